package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Client talks to the external puzzle service. The service owns generation
// and candidate computation; this side only validates shapes and never
// applies a partial response.
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// NewGameResult is a fully validated new-game response, flattened to the
// engine's cell indexing.
type NewGameResult struct {
	Board    [N]int
	Clues    [N]int
	Solution [N]int
}

type newGameResponse struct {
	Board         [][]int `json:"board"`
	OriginalBoard [][]int `json:"original_board"`
	Solution      [][]int `json:"solution"`
}

func flattenGrid(grid [][]int, lo, hi int) ([N]int, error) {
	var out [N]int
	if len(grid) != 9 {
		return out, fmt.Errorf("expected 9 rows, got %d", len(grid))
	}
	for r, row := range grid {
		if len(row) != 9 {
			return out, fmt.Errorf("row %d: expected 9 cells, got %d", r, len(row))
		}
		for c, v := range row {
			if v < lo || v > hi {
				return out, fmt.Errorf("cell (%d,%d): value %d out of range", r, c, v)
			}
			out[r*9+c] = v
		}
	}
	return out, nil
}

// NewGame fetches a puzzle at the given difficulty. On any error the caller's
// state is untouched; nothing is returned partially applied.
func (cl *Client) NewGame(ctx context.Context, difficulty string) (*NewGameResult, error) {
	reqID := uuid.NewString()
	clog := log.WithFields(log.Fields{"request_id": reqID, "difficulty": difficulty})

	u := fmt.Sprintf("%s/api/new-game?difficulty=%s", cl.base, url.QueryEscape(difficulty))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("new-game request: %w", err)
	}
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	resp, err := cl.http.Do(req)
	if err != nil {
		clog.WithError(err).Error("new-game fetch failed")
		return nil, fmt.Errorf("new-game fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		clog.WithField("status", resp.StatusCode).Error("new-game rejected")
		return nil, fmt.Errorf("new-game: service returned %s", resp.Status)
	}

	var body newGameResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("new-game decode: %w", err)
	}
	board, err := flattenGrid(body.Board, 0, 9)
	if err != nil {
		return nil, fmt.Errorf("new-game board: %w", err)
	}
	clues, err := flattenGrid(body.OriginalBoard, 0, 9)
	if err != nil {
		return nil, fmt.Errorf("new-game original_board: %w", err)
	}
	solution, err := flattenGrid(body.Solution, 1, 9)
	if err != nil {
		return nil, fmt.Errorf("new-game solution: %w", err)
	}
	for i := 0; i < N; i++ {
		if clues[i] != 0 && clues[i] != solution[i] {
			r, c := cellCoords(i)
			return nil, fmt.Errorf("new-game: clue (%d,%d)=%d contradicts solution %d", r, c, clues[i], solution[i])
		}
	}

	clog.WithField("elapsed", time.Since(start)).Info("new game fetched")
	return &NewGameResult{Board: board, Clues: clues, Solution: solution}, nil
}

// HintResult carries per-cell candidate masks. Valid is false for cells whose
// server entry was malformed; those keep whatever pencil marks they had.
type HintResult struct {
	Masks [N]uint16
	Valid [N]bool
}

type hintRequest struct {
	Board          [9][9]int   `json:"board"`
	ManualRemovals [9][9][]int `json:"manual_removals"`
}

type hintResponse struct {
	Hints [][][]int `json:"hints"`
}

// Hints fetches candidate suggestions for the current board. Malformed
// per-cell entries are skipped individually; only a response that is broken
// at the top level fails the whole call.
func (cl *Client) Hints(ctx context.Context, board [N]int, removed [N]uint16) (*HintResult, error) {
	reqID := uuid.NewString()
	clog := log.WithField("request_id", reqID)

	var payload hintRequest
	for i := 0; i < N; i++ {
		r, c := cellCoords(i)
		payload.Board[r][c] = board[i]
		payload.ManualRemovals[r][c] = maskToDigits(removed[i])
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("hints encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cl.base+"/api/get-hints", bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("hints request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	resp, err := cl.http.Do(req)
	if err != nil {
		clog.WithError(err).Error("hints fetch failed")
		return nil, fmt.Errorf("hints fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		clog.WithField("status", resp.StatusCode).Error("hints rejected")
		return nil, fmt.Errorf("hints: service returned %s", resp.Status)
	}

	var body hintResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("hints decode: %w", err)
	}
	if len(body.Hints) != 9 {
		return nil, fmt.Errorf("hints: expected 9 rows, got %d", len(body.Hints))
	}

	out := &HintResult{}
	skipped := 0
	for r, row := range body.Hints {
		if len(row) != 9 {
			clog.WithField("row", r).Warn("hint row has wrong shape; skipping row")
			skipped += 9
			continue
		}
		for c, digits := range row {
			mask, ok := digitsToMask(digits)
			if !ok {
				clog.WithFields(log.Fields{"row": r, "col": c}).Warn("hint cell out of range; skipping cell")
				skipped++
				continue
			}
			idx := r*9 + c
			out.Masks[idx] = mask
			out.Valid[idx] = true
		}
	}
	if skipped > 0 {
		clog.WithField("skipped", skipped).Warn("hints applied partially")
	}
	return out, nil
}
