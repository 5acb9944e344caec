package profiling

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackAccumulatesPerFrame(t *testing.T) {
	ResetFrame()
	stop := Track("test.Op")
	time.Sleep(2 * time.Millisecond)
	stop()
	Track("test.Op")()

	snap := Snapshot()
	require.Contains(t, snap, "test.Op")
	assert.GreaterOrEqual(t, snap["test.Op"], 2*time.Millisecond)

	ResetFrame()
	assert.Empty(t, Snapshot())
}

func TestTopNOrdersByDuration(t *testing.T) {
	ResetFrame()
	current.add("a", 1500*time.Microsecond)
	current.add("b", 4*time.Millisecond)
	current.add("c", 200*time.Microsecond)
	current.add("d", 200*time.Microsecond)
	defer ResetFrame()

	assert.Equal(t, "b:4ms, a:1.5ms", TopN(2))
	assert.Equal(t, "b:4ms, a:1.5ms, c:0.2ms, d:0.2ms", TopN(10))
	assert.Empty(t, TopN(0))
}

func TestHandlerExportsMetrics(t *testing.T) {
	ChunkBuilds.Inc()
	Track("test.Export")()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, "worldcraft_mesh_chunk_builds_total"))
	assert.True(t, strings.Contains(text, `worldcraft_op_duration_seconds_count{op="test.Export"}`))
}
