package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AgentConfig is the row shape describing one evaluated agent.
type AgentConfig struct {
	ID           int
	Simulations  int
	Exploration  float64
	Blend        float64
	LearningRate float64
	Seed         uint64
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Writer lays one run's CSV files under a uuid-named directory so
// repeated runs never clobber each other.
type Writer struct {
	baseDir string
}

func NewWriter(baseDir string) (*Writer, error) {
	dir := filepath.Join(baseDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	return &Writer{baseDir: dir}, nil
}

// Dir reports where this run's records land.
func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			strconv.Itoa(c.Simulations),
			strconv.FormatFloat(c.Exploration, 'g', -1, 64),
			strconv.FormatFloat(c.Blend, 'g', -1, 64),
			strconv.FormatFloat(c.LearningRate, 'g', -1, 64),
			strconv.FormatUint(c.Seed, 10),
		})
	}
	header := []string{"id", "simulations", "exploration", "blend", "learning_rate", "seed"}
	return w.writeFile("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Agent1),
			strconv.Itoa(r.Agent2),
			strconv.Itoa(r.StartingAgent),
			r.Winner,
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			r.Duration.String(),
			strconv.Itoa(r.TotalMoves),
		})
	}
	header := []string{"id", "agent1", "agent2", "starting_agent", "winner",
		"start_time", "end_time", "duration", "total_moves"}
	return w.writeFile("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Step),
			r.Player,
			strconv.Itoa(r.Column),
			string(r.Stage),
			strconv.Itoa(r.Episodes),
			strconv.Itoa(r.Playouts),
			r.Duration.String(),
		})
	}
	header := []string{"game", "step", "player", "column", "stage", "episodes", "playouts", "duration"}
	return w.writeFile("move_records.csv", header, rows)
}

func (w *Writer) writeFile(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write %s row: %w", name, err)
		}
	}
	return nil
}
