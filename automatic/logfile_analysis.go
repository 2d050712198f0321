package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// AnalyzeLogFile reads a turn log written by Run and summarizes it the
// same way Run does.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return AnalyzeLog(file)
}

func AnalyzeLog(in io.Reader) (*Summary, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = len(LogHeader)

	// Record looks like:
	// gameID,turn,player,rack,word,position,score,totalscore,tilesremaining
	byGame := map[int]*GameResult{}
	order := []int{}
	player := ""
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == LogHeader[0] {
			continue
		}
		ints, err := atois(record[0], record[6], record[7])
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		gameID, score, total := ints[0], ints[1], ints[2]
		player = record[2]

		res, ok := byGame[gameID]
		if !ok {
			res = &GameResult{GameID: gameID}
			byGame[gameID] = res
			order = append(order, gameID)
		}
		res.Score = total
		res.Turns++
		res.TurnScores = append(res.TurnScores, score)
		if score > res.BestScore || res.BestWord == "" {
			res.BestWord, res.BestScore = record[4], score
		}
	}
	results := make([]*GameResult, 0, len(order))
	for _, id := range order {
		results = append(results, byGame[id])
	}
	return Summarize(results, nil, player), nil
}

func atois(fields ...string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
