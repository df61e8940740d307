package store

import (
	"RGFlow/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyDoc = `{
  "clients": [],
  "atendimentos": [
    {"id":"a1","client":"Carlos","desc":"doc urgente","files":[{"name":"x.txt","type":"text/plain","size":2,"data":"data:text/plain;base64,aGk="}],"created":"2025-11-15T10:00:00.000Z"},
    {"id":"a2","client":"Ana","desc":"","files":[],"created":"2025-11-20T08:30:00.000Z"}
  ],
  "documentos": [
    {"id":"d1","name":"c.pdf","type":"application/pdf","size":3,"data":"data:application/pdf;base64,AAEC","uploaded":"2025-11-16T00:00:00.000Z"}
  ],
  "tarefas": [
    {"id":"t1","title":"Coletar docs","done":false,"due":"2025-11-22","created":"2025-11-10T00:00:00.000Z"},
    {"id":"","title":"Enviar relatório","done":true,"created":"bad"}
  ]
}`

func TestMigrateLegacy(t *testing.T) {
	st, err := migrateLegacy([]byte(legacyDoc))
	require.NoError(t, err)

	require.Len(t, st.Tickets, 2)
	assert.Equal(t, "a1", st.Tickets[0].ID)
	assert.Equal(t, "doc urgente", st.Tickets[0].Description)
	require.Len(t, st.Tickets[0].Attachments, 1)
	assert.Equal(t, "text/plain", st.Tickets[0].Attachments[0].MimeType)
	assert.Equal(t, time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC), st.Tickets[0].CreatedAt)
	assert.NotNil(t, st.Tickets[1].Attachments)

	require.Len(t, st.Tasks, 2)
	require.NotNil(t, st.Tasks[0].DueDate)
	assert.Equal(t, time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC), *st.Tasks[0].DueDate)
	assert.NotEmpty(t, st.Tasks[1].ID, "empty legacy id must be replaced")
	assert.True(t, st.Tasks[1].CreatedAt.IsZero())
	assert.Equal(t, 100, st.Tasks[1].Progress)

	require.Len(t, st.Documents, 1)
	assert.Equal(t, int64(3), st.Documents[0].SizeBytes)
}

func TestStore_Read_MigratesLegacyAndPersists(t *testing.T) {
	kv := newMemKV()
	kv.data[DataKey] = legacyDoc
	s := New(kv, nil)
	ctx := context.Background()

	// первый Update переписывает документ в новой форме
	st, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, st.Tickets, 2)

	require.NoError(t, s.Update(ctx, func(*model.State) error { return nil }))
	assert.Contains(t, kv.data[DataKey], `"version":1`)
}
