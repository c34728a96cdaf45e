package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root)
	require.NoError(t, err)
	require.NotEmpty(t, w.RunID())
	require.DirExists(t, w.Dir())

	t.Run("iterations", func(t *testing.T) {
		err := w.WriteIterations([]IterationRecord{
			{Iteration: 1, Episodes: 2, Examples: 144, BufferSize: 144, Trained: false, Duration: time.Second},
			{Iteration: 2, Episodes: 2, Examples: 160, BufferSize: 304, Trained: true, Duration: 2 * time.Second},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "iterations.csv"))
		require.Len(t, rows, 3, "Header plus one row per record")
		require.Equal(t, []string{"2", "2", "160", "304", "true", "2s"}, rows[2])
	})

	t.Run("contests", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteContests([]ContestRecord{
			{Iteration: 4, Games: 10, CandidateWins: 3, IncumbentWins: 7, WinRate: 0.3, Accepted: true, StartTime: start, EndTime: start},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "contests.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"4", "10", "3", "7", "0", "0.3000", "true", "2024-01-02T03:04:05Z", "2024-01-02T03:04:05Z"}, rows[1])
	})

	t.Run("games and moves", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGames([]GameRecord{
			{ID: 1, Agent: 2, GameMetric: GameMetric{StartingColor: 1, Winner: -1, TotalMoves: 8, Duration: time.Second, StartTime: start, EndTime: start}},
		})
		require.NoError(t, err)
		err = w.WriteMoves([]MoveRecord{
			{Game: 1, Step: 1, Color: 1, SearchMetric: SearchMetric{Simulations: 100, Duration: time.Millisecond, Expansions: 90, IsTreeReused: true}},
		})
		require.NoError(t, err)

		games := readCSV(t, filepath.Join(w.Dir(), "games.csv"))
		require.Equal(t, []string{"1", "2", "1", "-1", "8", "1s", "2024-01-02T03:04:05Z", "2024-01-02T03:04:05Z"}, games[1])
		moves := readCSV(t, filepath.Join(w.Dir(), "moves.csv"))
		require.Equal(t, []string{"1", "1", "1", "100", "1ms", "90", "0", "true"}, moves[1])
	})

	t.Run("setup", func(t *testing.T) {
		err := w.WriteSetup(map[string]int{"n": 3}, time.Now(), time.Now())
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(w.Dir(), "setup.json"))
		require.NoError(t, err)
		var setup Setup
		require.NoError(t, json.Unmarshal(data, &setup))
		require.Equal(t, w.RunID(), setup.RunID)
	})
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start()
	c.SetTreeReused(true)
	for i := 0; i < 3; i++ {
		c.AddSimulation()
	}
	c.AddExpansion()
	c.AddTerminal()

	got := c.Complete()
	require.Equal(t, 3, got.Simulations)
	require.Equal(t, 1, got.Expansions)
	require.Equal(t, 1, got.TerminalHits)
	require.True(t, got.IsTreeReused)

	c.Start()
	require.Equal(t, 0, c.Complete().Simulations, "Start should reset the counters")
	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete())
}
