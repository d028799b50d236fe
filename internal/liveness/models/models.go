// Package models holds liveness session state and the motion rule applied to it.
package models

import (
	"math"
	"time"
)

const (
	// MinFrames is the number of stored frames required before a decision.
	MinFrames = 6
	// DefaultThreshold is the mean landmark displacement, in normalized
	// coordinates, at or above which a subject is considered live.
	DefaultThreshold = 0.02
)

// Reasons reported alongside a negative result.
const (
	ReasonNoFace     = "no face detected"
	ReasonCollecting = "collecting_frames"
)

// Point is a normalized landmark position. Depth is ignored.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Frame is the landmark set of one face in one image.
type Frame []Point

// Session is the buffered frame history of one subject.
type Session struct {
	SubjectID string    `json:"subject_id"`
	Frames    []Frame   `json:"frames"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession starts an empty session.
func NewSession(subjectID string, now time.Time) *Session {
	return &Session{SubjectID: subjectID, UpdatedAt: now}
}

// Append stores f when its point count matches the frames already held and
// reports whether it was stored. The oldest frames are dropped once the buffer
// exceeds maxFrames (no cap when maxFrames <= 0).
func (s *Session) Append(f Frame, maxFrames int, now time.Time) bool {
	s.UpdatedAt = now
	if len(f) == 0 {
		return false
	}
	if len(s.Frames) > 0 && len(s.Frames[0]) != len(f) {
		return false
	}
	s.Frames = append(s.Frames, f)
	if maxFrames > 0 && len(s.Frames) > maxFrames {
		s.Frames = append([]Frame(nil), s.Frames[len(s.Frames)-maxFrames:]...)
	}
	return true
}

// AverageDisplacement is the mean, over consecutive frame pairs, of the mean
// Euclidean distance each landmark moved. Fewer than two frames yield 0.
func AverageDisplacement(frames []Frame) float64 {
	if len(frames) < 2 {
		return 0
	}
	var total float64
	pairs := 0
	for i := 1; i < len(frames); i++ {
		prev, cur := frames[i-1], frames[i]
		if len(prev) == 0 || len(prev) != len(cur) {
			continue
		}
		var sum float64
		for j := range cur {
			sum += math.Hypot(cur[j].X-prev[j].X, cur[j].Y-prev[j].Y)
		}
		total += sum / float64(len(cur))
		pairs++
	}
	if pairs == 0 {
		return 0
	}
	return total / float64(pairs)
}

// Result is the per-frame liveness response. Fields not relevant to the
// current state are omitted.
type Result struct {
	Live                bool     `json:"live"`
	Reason              string   `json:"reason,omitempty"`
	FramesCollected     *int     `json:"frames_collected,omitempty"`
	AverageDisplacement *float64 `json:"average_displacement,omitempty"`
	Threshold           *float64 `json:"threshold,omitempty"`
	FramesAnalyzed      *int     `json:"frames_analyzed,omitempty"`
}

// NoFace is the result for a frame without a detectable face.
func NoFace() *Result {
	return &Result{Reason: ReasonNoFace}
}

// Collecting is the result while fewer than MinFrames are stored.
func Collecting(n int) *Result {
	return &Result{Reason: ReasonCollecting, FramesCollected: &n}
}

// Evaluated is the result once a decision has been computed.
func Evaluated(live bool, avg, threshold float64, analyzed int) *Result {
	return &Result{
		Live:                live,
		AverageDisplacement: &avg,
		Threshold:           &threshold,
		FramesAnalyzed:      &analyzed,
	}
}
