package tables

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/assert"
)

const heartHead = `Age,Sex,MaxHR,ExerciseAngina,HeartDisease
40,M,172,N,0
49,F,156,N,1
37,M,98,Y,0
48,F,108,Y,1
`

func Test_ReadCSVFrom(t *testing.T) {
	tab, err := ReadCSVFrom(strings.NewReader(heartHead))
	assert.NilError(t, err)
	assert.Assert(t, tab.Len() == 4)
	assert.DeepEqual(t, tab.Names(), []string{"Age", "Sex", "MaxHR", "ExerciseAngina", "HeartDisease"})

	assert.Assert(t, tab.Col("Age").Kind == Numeric)
	assert.Assert(t, tab.Col("HeartDisease").Kind == Numeric)
	assert.Assert(t, tab.Col("Sex").Kind == Factor)

	// factor codes follow sorted label order: F=0, M=1
	assert.DeepEqual(t, tab.Col("Sex").Levels, []string{"F", "M"})
	assert.DeepEqual(t, tab.Col("Sex").Codes, []int{1, 0, 1, 0})
	assert.DeepEqual(t, tab.Col("ExerciseAngina").Levels, []string{"N", "Y"})
}

func Test_ReadCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heart.csv")
	assert.NilError(t, os.WriteFile(path, []byte(heartHead), 0o644))
	tab, err := ReadCSV(path)
	assert.NilError(t, err)
	assert.Assert(t, tab.Len() == 4)
}

func Test_ReadCSV_EmptyCell(t *testing.T) {
	_, err := ReadCSVFrom(strings.NewReader("A,B\n1,\n"))
	assert.ErrorContains(t, err, "empty value")
}

func Test_ReadCSV_Missing(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorContains(t, err, "open dataset")
}
