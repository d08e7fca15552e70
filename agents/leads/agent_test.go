package leads

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/falconlabs/voicedesk/store"
)

func newTestAgent(t *testing.T) (*Agent, *store.JSONStore) {
	t.Helper()
	records := store.NewJSONStore(filepath.Join(t.TempDir(), "leads.json"), zap.NewNop())
	return New(records, zap.NewNop()), records
}

func TestAgent_CaptureFlow(t *testing.T) {
	ctx := context.Background()
	a, records := newTestAgent(t)

	reply, err := a.UpdateLead(ctx, "Sam", "", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "What company are you with?", reply)

	reply, err = a.UpdateLead(ctx, "", "Acme Corp", "", "call routing", "evaluating vendors")
	require.NoError(t, err)
	assert.Equal(t, "Great, thanks Sam! I've noted that Acme Corp is interested in call routing. Notes: evaluating vendors. Our team will be in touch shortly.", reply)

	entries, err := records.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var rec Record
	require.NoError(t, json.Unmarshal(entries[0], &rec))
	assert.Equal(t, "Acme Corp", rec.Company)
	assert.Equal(t, []string{"evaluating vendors"}, rec.Notes)
	assert.Equal(t, "", rec.Email)
}

func TestAgent_NotesAppendAcrossUpdates(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAgent(t)

	_, err := a.UpdateLead(ctx, "", "", "", "", "budget approved")
	require.NoError(t, err)
	_, err = a.UpdateLead(ctx, "", "", "", "", "wants demo in march")
	require.NoError(t, err)

	assert.Equal(t, []string{"budget approved", "wants demo in march"}, a.Lead().Notes)
}

func TestAgent_OptionalEmailNeverBlocks(t *testing.T) {
	ctx := context.Background()
	a, records := newTestAgent(t)

	reply, err := a.UpdateLead(ctx, "Kim", "Globex", "", "analytics", "")
	require.NoError(t, err)
	assert.Contains(t, reply, "Globex is interested in analytics")

	entries, err := records.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
