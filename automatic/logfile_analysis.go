package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/game"
)

// AnalyzeLogFile reads a game log written by PlayGames and summarizes it.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return analyzeLog(file)
}

func analyzeLog(rd io.Reader) (*Summary, error) {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = len(csvHeader)

	// Record looks like:
	// gameID,first,winner,length,moves
	s := NewSummary()
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == csvHeader[0] {
			continue
		}
		first, err := board.PlayerFromString(record[1])
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", record[0], err)
		}
		rec := GameRecord{First: first, Moves: record[4], Result: game.Draw}
		if record[2] != "-" {
			rec.Result = game.Won
			if rec.Winner, err = board.PlayerFromString(record[2]); err != nil {
				return nil, fmt.Errorf("game %s: %w", record[0], err)
			}
		}
		s.Add(rec)
	}
	return s, nil
}
