package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type IterationRecord struct {
	Iteration  int
	Episodes   int
	Examples   int // examples produced by this iteration's episodes
	BufferSize int
	Trained    bool
	Duration   time.Duration
}

type ContestRecord struct {
	Iteration     int
	Games         int
	CandidateWins int
	IncumbentWins int
	Draws         int
	WinRate       float64 // candidate wins over decisive games, 0 without any
	Accepted      bool
	StartTime     time.Time
	EndTime       time.Time
}

type AgentConfig struct {
	ID          int `json:"id"`
	Goroutines  int `json:"goroutines"`
	Simulations int `json:"simulations"`
}

type GameRecord struct {
	ID    int
	Agent int
	GameMetric
}

type MoveRecord struct {
	Game  int
	Step  int
	Color int
	SearchMetric
}

type Setup struct {
	RunID     string    `json:"runId"`
	Config    any       `json:"config"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// Writer stores the records of a training run under
// <root>/<timestamp>-<run id>/.
type Writer struct {
	runID   string
	baseDir string
}

func NewWriter(root string) (*Writer, error) {
	runID := uuid.NewString()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp+"-"+runID)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		runID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(config any, start, end time.Time) error {
	setup := Setup{
		RunID:     w.runID,
		Config:    config,
		StartTime: start,
		EndTime:   end,
	}

	f, err := os.Create(filepath.Join(w.baseDir, "setup.json"))
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

func (w *Writer) WriteIterations(records []IterationRecord) error {
	header := []string{"iteration", "episodes", "examples", "buffer_size", "trained", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Iteration),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.Examples),
			strconv.Itoa(record.BufferSize),
			strconv.FormatBool(record.Trained),
			record.Duration.String(),
		})
	}
	return w.writeCSV("iterations.csv", header, rows)
}

func (w *Writer) WriteContests(records []ContestRecord) error {
	header := []string{"iteration", "games", "candidate_wins", "incumbent_wins", "draws", "win_rate", "accepted", "start_time", "end_time"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Iteration),
			strconv.Itoa(record.Games),
			strconv.Itoa(record.CandidateWins),
			strconv.Itoa(record.IncumbentWins),
			strconv.Itoa(record.Draws),
			strconv.FormatFloat(record.WinRate, 'f', 4, 64),
			strconv.FormatBool(record.Accepted),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
		})
	}
	return w.writeCSV("contests.csv", header, rows)
}

func (w *Writer) WriteGames(records []GameRecord) error {
	header := []string{"id", "agent", "starting_color", "winner", "total_moves", "duration", "start_time", "end_time"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent),
			strconv.Itoa(record.StartingColor),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.TotalMoves),
			record.Duration.String(),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
		})
	}
	return w.writeCSV("games.csv", header, rows)
}

func (w *Writer) WriteMoves(records []MoveRecord) error {
	header := []string{"game", "step", "color", "simulations", "duration", "expansions", "terminal_hits", "tree_reused"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Color),
			strconv.Itoa(record.Simulations),
			record.Duration.String(),
			strconv.Itoa(record.Expansions),
			strconv.Itoa(record.TerminalHits),
			strconv.FormatBool(record.IsTreeReused),
		})
	}
	return w.writeCSV("moves.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
