// Package flowprog compiles a small YAML vocabulary into an op.Op tree,
// giving the cmd/flowc CLI something runnable straight from a file. It is
// explicitly a thin example surface over the operation algebra, not a
// design for user-facing syntax — op.Op itself is the stable contract.
// Decoding follows the teacher's internal/config/parser.go (read file,
// yaml.Unmarshal, wrap decode errors as a typed ParseError).
//
// Variants requiring a host callable or a nested nested-operation thunk
// (Eval's callable/nested-op families, Fun/Call closures, Defer, and
// Iter's Next step) have no YAML representation here — they are
// constructed programmatically via the flow package instead. The YAML
// vocabulary covers: con, var, getattr, getitem, eval (string-expression
// family only), log, err, seq, par, arr, with, map, fil, match.
package flowprog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flowlang/flow/internal/op"
	flowerrors "github.com/flowlang/flow/pkg/errors"
)

// Node is the raw decoded shape of one program node: exactly one of its
// fields is set, naming the operation variant.
type Node struct {
	Con     any         `yaml:"con,omitempty"`
	Var     string      `yaml:"var,omitempty"`
	GetAttr *GetAttrNode `yaml:"getattr,omitempty"`
	GetItem *GetItemNode `yaml:"getitem,omitempty"`
	Eval    *EvalNode    `yaml:"eval,omitempty"`
	Log     *LogNode     `yaml:"log,omitempty"`
	Err     *ErrNode     `yaml:"err,omitempty"`
	Seq     []Node       `yaml:"seq,omitempty"`
	Par     []Node       `yaml:"par,omitempty"`
	Arr     []Node       `yaml:"arr,omitempty"`
	Map     *MapNode     `yaml:"map,omitempty"`
	Fil     *FilNode     `yaml:"fil,omitempty"`
	With    *WithNode    `yaml:"with,omitempty"`
	Match   *MatchNode   `yaml:"match,omitempty"`
}

// GetAttrNode is the decoded shape of a getattr node.
type GetAttrNode struct {
	Of      Node   `yaml:"of"`
	Name    string `yaml:"name"`
	Default *Node  `yaml:"default,omitempty"`
}

// GetItemNode is the decoded shape of a getitem node.
type GetItemNode struct {
	Of  Node `yaml:"of"`
	Key Node `yaml:"key"`
}

// EvalNode is the decoded shape of an eval node (string-expression
// family only).
type EvalNode struct {
	Args []Node `yaml:"args,omitempty"`
	Expr string `yaml:"expr"`
}

// LogNode is the decoded shape of a log node.
type LogNode struct {
	Name string `yaml:"name,omitempty"`
	Msg  string `yaml:"msg,omitempty"`
	Node Node   `yaml:"node"`
}

// ErrNode is the decoded shape of an err node.
type ErrNode struct {
	Msg  string `yaml:"msg"`
	Args []Node `yaml:"args,omitempty"`
}

// MapNode is the decoded shape of a map node.
type MapNode struct {
	Var  string `yaml:"var"`
	Iter Node   `yaml:"iter"`
	Body Node   `yaml:"body"`
}

// FilNode is the decoded shape of a fil node.
type FilNode struct {
	Var  string `yaml:"var"`
	Iter Node   `yaml:"iter"`
	Pred Node   `yaml:"pred"`
}

// WithNode is the decoded shape of a with node.
type WithNode struct {
	Names []string `yaml:"names"`
	Vals  []Node   `yaml:"vals"`
	Body  Node     `yaml:"body"`
}

// MatchCaseNode is one case of a match node.
type MatchCaseNode struct {
	Pred   Node `yaml:"pred"`
	Result Node `yaml:"result"`
}

// MatchNode is the decoded shape of a match node.
type MatchNode struct {
	Var   string          `yaml:"var"`
	Value Node            `yaml:"value"`
	Cases []MatchCaseNode `yaml:"cases"`
}

// LoadFile reads path and compiles it into an op.Op.
func LoadFile(path string) (op.Op, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, flowerrors.NewParseError(path, 0, err)
	}
	var n Node
	if err := yaml.Unmarshal(raw, &n); err != nil {
		return nil, flowerrors.NewParseError(path, 0, err)
	}
	return Compile(n)
}

// Compile lowers a decoded Node into an op.Op tree.
func Compile(n Node) (op.Op, error) {
	switch {
	case n.Var != "":
		return op.NewVar(n.Var), nil
	case n.GetAttr != nil:
		of, err := Compile(n.GetAttr.Of)
		if err != nil {
			return nil, err
		}
		var def op.Op
		if n.GetAttr.Default != nil {
			def, err = Compile(*n.GetAttr.Default)
			if err != nil {
				return nil, err
			}
		}
		return op.NewGetAttr(of, n.GetAttr.Name, def), nil
	case n.GetItem != nil:
		of, err := Compile(n.GetItem.Of)
		if err != nil {
			return nil, err
		}
		key, err := Compile(n.GetItem.Key)
		if err != nil {
			return nil, err
		}
		return op.NewGetItem(of, key), nil
	case n.Eval != nil:
		args, err := compileAll(n.Eval.Args)
		if err != nil {
			return nil, err
		}
		return op.NewEval(args, n.Eval.Expr, true), nil
	case n.Log != nil:
		node, err := Compile(n.Log.Node)
		if err != nil {
			return nil, err
		}
		return op.NewLog(n.Log.Name, n.Log.Msg, node), nil
	case n.Err != nil:
		args, err := compileAll(n.Err.Args)
		if err != nil {
			return nil, err
		}
		return op.NewErr(n.Err.Msg, args), nil
	case n.Seq != nil:
		ops, err := compileAll(n.Seq)
		if err != nil {
			return nil, err
		}
		return op.NewSeq(ops), nil
	case n.Par != nil:
		ops, err := compileAll(n.Par)
		if err != nil {
			return nil, err
		}
		return op.NewPar(ops), nil
	case n.Arr != nil:
		ops, err := compileAll(n.Arr)
		if err != nil {
			return nil, err
		}
		return op.NewArr(ops), nil
	case n.Map != nil:
		iter, err := Compile(n.Map.Iter)
		if err != nil {
			return nil, err
		}
		body, err := Compile(n.Map.Body)
		if err != nil {
			return nil, err
		}
		return op.NewMap(n.Map.Var, iter, body), nil
	case n.Fil != nil:
		iter, err := Compile(n.Fil.Iter)
		if err != nil {
			return nil, err
		}
		pred, err := Compile(n.Fil.Pred)
		if err != nil {
			return nil, err
		}
		return op.NewFil(n.Fil.Var, iter, pred), nil
	case n.With != nil:
		if len(n.With.Names) != len(n.With.Vals) {
			return nil, flowerrors.NewValidationError("with", fmt.Sprintf("%d names but %d vals", len(n.With.Names), len(n.With.Vals)), nil)
		}
		vals, err := compileAll(n.With.Vals)
		if err != nil {
			return nil, err
		}
		body, err := Compile(n.With.Body)
		if err != nil {
			return nil, err
		}
		return op.NewWith(n.With.Names, vals, body), nil
	case n.Match != nil:
		value, err := Compile(n.Match.Value)
		if err != nil {
			return nil, err
		}
		cases := make([]op.MatchCase, len(n.Match.Cases))
		for i, c := range n.Match.Cases {
			pred, err := Compile(c.Pred)
			if err != nil {
				return nil, err
			}
			result, err := Compile(c.Result)
			if err != nil {
				return nil, err
			}
			cases[i] = op.MatchCase{Pred: pred, Result: result}
		}
		return op.NewMatch(n.Match.Var, value, cases), nil
	default:
		return op.NewCon(n.Con), nil
	}
}

func compileAll(nodes []Node) ([]op.Op, error) {
	ops := make([]op.Op, len(nodes))
	for i, n := range nodes {
		o, err := Compile(n)
		if err != nil {
			return nil, err
		}
		ops[i] = o
	}
	return ops, nil
}
