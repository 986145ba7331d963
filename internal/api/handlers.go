package api

import (
	"net/http"

	"seqapi/internal/errors"
	"seqapi/internal/sequence"
)

// SequenceResponse is the success body of every sequence endpoint
type SequenceResponse struct {
	Sequence []int64 `json:"sequence"`
	Length   int     `json:"length"`
}

// MessageResponse is the body of the root endpoint
type MessageResponse struct {
	Message string `json:"message"`
}

// SequenceInfo describes one registered sequence
type SequenceInfo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Order        int      `json:"order"`
	Coefficients []int64  `json:"coefficients"`
	Initial      []int64  `json:"initial"`
	Formula      string   `json:"formula"`
	Routes       []string `json:"routes"`
}

// SequencesResponse lists the registered sequences
type SequencesResponse struct {
	Sequences []SequenceInfo `json:"sequences"`
	MaxCount  int            `json:"maxCount"`
}

// handleSequence builds the GET/POST handler for one recurrence.
func (s *Server) handleSequence(rec sequence.Recurrence) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
		}

		count, err := NewRequestContext(r, s.maxCount).RequestedCount()
		if err != nil {
			code := errors.CodeOf(err)
			s.metrics.RecordValidationError(rec.Name, string(code))
			s.logger.Debug("Rejected sequence request", map[string]interface{}{
				"sequence":  rec.Name,
				"code":      string(code),
				"error":     err.Error(),
				"requestID": GetRequestID(r.Context()),
			})
			WriteSeqError(w, err)
			return
		}

		seq := rec.Generate(count)
		s.metrics.RecordSequence(rec.Name, len(seq))

		WriteJSON(w, SequenceResponse{Sequence: seq, Length: len(seq)}, http.StatusOK)
	}
}

// handleListSequences handles GET /sequences
func (s *Server) handleListSequences(w http.ResponseWriter, r *http.Request) {
	recs := sequence.All()
	resp := SequencesResponse{
		Sequences: make([]SequenceInfo, 0, len(recs)),
		MaxCount:  s.maxCount,
	}
	for _, rec := range recs {
		resp.Sequences = append(resp.Sequences, SequenceInfo{
			Name:         rec.Name,
			Description:  rec.Description,
			Order:        rec.Order(),
			Coefficients: rec.Coefficients,
			Initial:      rec.Initial,
			Formula:      rec.Formula(),
			Routes:       []string{"GET /" + rec.Name, "POST /" + rec.Name},
		})
	}
	WriteJSON(w, resp, http.StatusOK)
}
