package report

import (
	"RGFlow/internal/model"
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportTicketsCSV_Golden(t *testing.T) {
	tickets := []model.Ticket{
		{ID: "1", Client: "A,B", Description: `He said "hi"`, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Client: "Maria", Description: "linha 1\nlinha 2", CreatedAt: time.Date(2024, 1, 2, 12, 30, 0, 0, time.FixedZone("BRT", -3*3600))},
		{ID: "3", Client: "", Description: "", CreatedAt: time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportTicketsCSV(&buf, tickets))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "tickets_csv", buf.Bytes())
}

func TestExportTicketsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportTicketsCSV(&buf, nil))
	assert.Equal(t, "id,client,description,created\n", buf.String())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestExportTicketsCSV_WriteError(t *testing.T) {
	err := ExportTicketsCSV(brokenWriter{}, []model.Ticket{{ID: "1"}})
	assert.Error(t, err)
}

// id из старых данных может содержать разделители; вывод должен оставаться валидным CSV.
func TestExportTicketsCSV_IDWithSeparators(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tickets := []model.Ticket{
		{ID: "17,2", Client: "A", CreatedAt: created},
		{ID: `x"y`, Client: "B", CreatedAt: created},
		{ID: "a\nb", Client: "C", CreatedAt: created},
		{ID: "plain", Client: "D", CreatedAt: created},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportTicketsCSV(&buf, tickets))
	assert.Contains(t, buf.String(), "\nplain,\"D\",")

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"17,2", `x"y`, "a\nb", "plain"},
		[]string{records[1][0], records[2][0], records[3][0], records[4][0]})
	for _, r := range records {
		assert.Len(t, r, 4)
	}
}
