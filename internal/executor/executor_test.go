package executor_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/flowlang/flow/internal/executor"
	"github.com/flowlang/flow/internal/op"
	"github.com/flowlang/flow/internal/trace"
)

func TestExecuteTagsTraceRecordsWithRunID(t *testing.T) {
	t.Parallel()

	sink := trace.NewSliceSink()
	ex := executor.New(executor.WithSink(sink))

	v, err := ex.Execute(context.Background(), op.NewSeq([]op.Op{op.NewCon(1), op.NewCon(2)}))
	require.NoError(t, err)
	require.Equal(t, 2, v)

	require.NotEmpty(t, sink.Records)
	runID := sink.Records[0].RunID
	_, err = uuid.Parse(runID)
	require.NoError(t, err, "RunID must be a valid uuid")
	for _, r := range sink.Records {
		require.Equal(t, runID, r.RunID, "every record from one Execute call must share a run id")
	}
}

func TestExecuteTagsDistinctRunsWithDistinctRunIDs(t *testing.T) {
	t.Parallel()

	sinkA := trace.NewSliceSink()
	sinkB := trace.NewSliceSink()

	_, err := executor.New(executor.WithSink(sinkA)).Execute(context.Background(), op.NewCon(1))
	require.NoError(t, err)
	_, err = executor.New(executor.WithSink(sinkB)).Execute(context.Background(), op.NewCon(2))
	require.NoError(t, err)

	require.NotEqual(t, sinkA.Records[0].RunID, sinkB.Records[0].RunID)
}
