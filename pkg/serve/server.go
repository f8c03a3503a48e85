// Package serve implements a newline-delimited JSON protocol for solving
// puzzle inputs over a pair of streams.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/praetorian-inc/almanac/pkg/puzzle"
	"github.com/praetorian-inc/almanac/pkg/store"
	"go.uber.org/zap"
)

// Version is the server protocol version
const Version = "1.0.0"

// DefaultPuzzle is used when a solve request names no puzzle.
const DefaultPuzzle = puzzle.AlmanacName

// Server answers solve requests read from in and writes responses to out.
type Server struct {
	ctx     context.Context
	engine  *puzzle.Engine
	store   store.Store
	encoder *json.Encoder
	decoder *json.Decoder
	logger  *zap.Logger
}

// NewServer creates a new streaming server
func NewServer(engine *puzzle.Engine, in io.Reader, out io.Writer) *Server {
	return &Server{
		ctx:     context.Background(),
		engine:  engine,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
		logger:  zap.NewNop(),
	}
}

// SetStore records every successful solve in st. A nil store disables
// recording.
func (s *Server) SetStore(st store.Store) {
	s.store = st
}

// SetLogger replaces the server's logger.
func (s *Server) SetLogger(l *zap.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	s.ctx = ctx
	s.sendReady()

	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until input closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	s.logger.Debug("request", zap.String("type", req.Type))
	switch req.Type {
	case "solve":
		s.handleSolve(req.Payload)
	case "solve_batch":
		s.handleSolveBatch(req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	data, _ := json.Marshal(ReadyData{Version: Version, Puzzles: s.engine.Names()})
	s.encoder.Encode(Response{
		Success: true,
		Type:    "ready",
		Data:    data,
	})
}

func (s *Server) handleSolve(payload json.RawMessage) {
	var p SolvePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("solve", err.Error())
		return
	}

	name, part := requestTarget(p)
	res, err := s.engine.Solve(s.ctx, name, part, p.Input)
	if err != nil {
		s.sendError("solve", err.Error())
		return
	}
	s.record(res, p.Input)

	data, _ := json.Marshal(solveData(p.ID, res))
	s.encoder.Encode(Response{
		Success: true,
		Type:    "solve",
		Data:    data,
	})
}

func (s *Server) handleSolveBatch(payload json.RawMessage) {
	var p SolveBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("solve_batch", err.Error())
		return
	}

	// Fan out, then collect in request order.
	pending := make([]<-chan puzzle.Outcome, len(p.Items))
	for i, item := range p.Items {
		name, part := requestTarget(item)
		pending[i] = s.engine.SolveAsync(s.ctx, name, part, item.Input)
	}

	batch := BatchData{Results: make([]SolveData, 0, len(p.Items)), Total: len(p.Items)}
	for i, ch := range pending {
		out := <-ch
		if out.Err != nil {
			name, part := requestTarget(p.Items[i])
			batch.Results = append(batch.Results, SolveData{
				ID:     p.Items[i].ID,
				Puzzle: name,
				Part:   int(part),
				Error:  out.Err.Error(),
			})
			batch.Failed++
			continue
		}
		s.record(out.Result, p.Items[i].Input)
		batch.Results = append(batch.Results, solveData(p.Items[i].ID, out.Result))
	}

	data, _ := json.Marshal(batch)
	s.encoder.Encode(Response{
		Success: true,
		Type:    "solve_batch",
		Data:    data,
	})
}

// record stores a fresh result. Cached answers were recorded when first solved.
func (s *Server) record(res *puzzle.Result, input string) {
	if s.store == nil || res.Cached {
		return
	}
	if err := s.store.AddInput(res.InputID, int64(len(input))); err != nil {
		s.logger.Warn("recording input failed", zap.Error(err))
		return
	}
	if err := s.store.AddSolution(res.Solution()); err != nil {
		s.logger.Warn("recording solution failed", zap.Error(err))
	}
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}

func requestTarget(p SolvePayload) (string, puzzle.Part) {
	name := p.Puzzle
	if name == "" {
		name = DefaultPuzzle
	}
	part := puzzle.Part(p.Part)
	if p.Part == 0 {
		part = puzzle.Part1
	}
	return name, part
}

func solveData(id string, res *puzzle.Result) SolveData {
	return SolveData{
		ID:         id,
		Puzzle:     res.Puzzle,
		Part:       int(res.Part),
		InputID:    res.InputID,
		Answer:     res.Answer,
		Cached:     res.Cached,
		DurationMS: float64(res.Duration.Microseconds()) / 1000,
	}
}
