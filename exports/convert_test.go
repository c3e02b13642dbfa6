package exports

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"csv-to-json/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func convertString(t *testing.T, content string, c Converter) string {
	t.Helper()
	dir := t.TempDir()
	input := writeInput(t, dir, content)
	output := filepath.Join(dir, "out.json")

	_, err := c.Convert(input, output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	return string(data)
}

func TestConvert_ShapesAndValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"two rows", "name,age\nAlice,30\nBob,\n", `[{"name":"Alice","age":"30"},{"name":"Bob","age":null}]`},
		{"one row", "name,age\nAlice,30\n", `{"name":"Alice","age":"30"}`},
		{"header only", "name,age\n", `{}`},
		{"empty file", "", `{}`},
		{"truncated row", "a,b,c\nx,y\n", `{"a":"x","b":"y"}`},
		{"bare quotes", "name,height\nBob,5\" 10\nAnn,6\n", `[{"name":"Bob","height":"5\" 10"},{"name":"Ann","height":"6"}]`},
		{"quoted fields", "id,desc\n1,\"Smith, John\"\n2,\" padded \"\n", `[{"id":"1","desc":"Smith, John"},{"id":"2","desc":"padded"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertString(t, tt.input, Converter{}))
		})
	}
}

func TestConvert_Lowercase(t *testing.T) {
	input := "Name,AGE\nAlice,30\nBob,40\n"

	plain := convertString(t, input, Converter{})
	lower := convertString(t, input, Converter{Lowercase: true})

	assert.Equal(t, `[{"Name":"Alice","AGE":"30"},{"Name":"Bob","AGE":"40"}]`, plain)
	assert.Equal(t, `[{"name":"Alice","age":"30"},{"name":"Bob","age":"40"}]`, lower)
}

func TestConvert_Pretty(t *testing.T) {
	got := convertString(t, "name,age\nAlice,30\n", Converter{Pretty: true})
	assert.Equal(t, "{\n    \"name\": \"Alice\",\n    \"age\": \"30\"\n}", got)
}

func TestConvert_Result(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "id,id\n1,2\n3,4\n5,6\n")
	output := filepath.Join(dir, "nested", "dir", "out.json")

	result, err := (&Converter{}).Convert(input, output)
	require.NoError(t, err)

	assert.Equal(t, output, result.Output)
	assert.Equal(t, ShapeArray, result.Shape)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Processed)
	assert.False(t, result.Headers.Valid, "duplicate header is reported")
	assert.NotEmpty(t, result.JobID)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, len(data), result.Bytes)
	assert.Equal(t, `[{"id":"2"},{"id":"4"},{"id":"6"}]`, string(data))
}

func TestConvert_DefaultOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(input, []byte("name\nAlice\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	result, err := (&Converter{}).Convert(input, "")
	require.NoError(t, err)
	assert.Equal(t, "people.json", result.Output)

	data, err := os.ReadFile("people.json")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Alice"}`, string(data))
}

func TestConvert_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := (&Converter{}).Convert(filepath.Join(dir, "missing.csv"), filepath.Join(dir, "out.json"))
	assert.True(t, common.IsKind(err, common.KindInputOpen))

	bad := writeInput(t, dir, "a,b\nx,y\n\xff,x\n")
	_, err = (&Converter{}).Convert(bad, filepath.Join(dir, "bad.json"))
	assert.True(t, common.IsKind(err, common.KindRecordRead))
	assert.NoFileExists(t, filepath.Join(dir, "bad.json"))
}

func TestConvert_LogsStages(t *testing.T) {
	var buf bytes.Buffer
	convertString(t, "name\nAlice\nBob\n", Converter{Logger: log.New(&buf, "", 0)})

	out := buf.String()
	assert.Contains(t, out, "Reading csv file")
	assert.Contains(t, out, "Processed 2/2 records")
	assert.Contains(t, out, "JSON created at")
}

func TestConvert_RecordsHistory(t *testing.T) {
	db, err := common.OpenDatabase(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { common.CloseDatabase(db) })
	store := common.NewJobStore(db)

	dir := t.TempDir()
	input := writeInput(t, dir, "name\nAlice\nBob\n")
	result, err := (&Converter{Jobs: store}).Convert(input, filepath.Join(dir, "out.json"))
	require.NoError(t, err)

	job, err := store.Get(result.JobID)
	require.NoError(t, err)
	assert.Equal(t, common.JobStatusCompleted, job.Status)
	assert.Equal(t, "array", job.Shape)
	assert.Equal(t, 2, job.ProcessedCount)

	_, err = (&Converter{Jobs: store}).Convert(filepath.Join(dir, "missing.csv"), filepath.Join(dir, "x.json"))
	require.Error(t, err)

	jobs, err := store.List(10)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	statuses := []string{jobs[0].Status, jobs[1].Status}
	assert.ElementsMatch(t, []string{common.JobStatusCompleted, common.JobStatusFailed}, statuses)
}
