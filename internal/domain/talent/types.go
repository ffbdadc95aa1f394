package talent

import (
	"fmt"
	"strings"
	"time"
)

// Stage is a candidate's position in the hiring funnel.
type Stage string

const (
	StageApplied   Stage = "applied"
	StageScreen    Stage = "screen"
	StageInterview Stage = "interview"
	StageOnsite    Stage = "onsite"
	StageOffer     Stage = "offer"
	StageHired     Stage = "hired"
	StageRejected  Stage = "rejected"
	StageWithdrawn Stage = "withdrawn"
)

// PipelineStages are the ordered working stages a candidate advances through.
// Terminal stages (hired/rejected/withdrawn) are not part of the order.
var PipelineStages = []Stage{
	StageApplied,
	StageScreen,
	StageInterview,
	StageOnsite,
	StageOffer,
}

var stageIndex = map[Stage]int{
	StageApplied:   0,
	StageScreen:    1,
	StageInterview: 2,
	StageOnsite:    3,
	StageOffer:     4,
}

func ParseStage(value string) (Stage, error) {
	s := Stage(strings.ToLower(strings.TrimSpace(value)))
	switch s {
	case StageApplied, StageScreen, StageInterview, StageOnsite, StageOffer,
		StageHired, StageRejected, StageWithdrawn:
		return s, nil
	}
	return "", fmt.Errorf("unknown stage %q", value)
}

// StageOrder returns the pipeline position of a working stage, or -1 for
// terminal stages.
func StageOrder(s Stage) int {
	if idx, ok := stageIndex[s]; ok {
		return idx
	}
	return -1
}

func IsTerminalStage(s Stage) bool {
	return s == StageHired || s == StageRejected || s == StageWithdrawn
}

// ReqStatus is the lifecycle state of a requisition.
type ReqStatus string

const (
	ReqOpen      ReqStatus = "open"
	ReqOnHold    ReqStatus = "on_hold"
	ReqFilled    ReqStatus = "filled"
	ReqCancelled ReqStatus = "cancelled"
)

func ParseReqStatus(value string) (ReqStatus, error) {
	s := ReqStatus(strings.ToLower(strings.TrimSpace(value)))
	switch s {
	case ReqOpen, ReqOnHold, ReqFilled, ReqCancelled:
		return s, nil
	}
	return "", fmt.Errorf("unknown requisition status %q", value)
}

// Priority ranks how urgently a requisition must be filled.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func ParsePriority(value string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(value)))
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return p, nil
	}
	return "", fmt.Errorf("unknown priority %q", value)
}

// PriorityWeight maps priority to its arbitration base score.
func PriorityWeight(p Priority) float64 {
	switch p {
	case PriorityCritical:
		return 40
	case PriorityHigh:
		return 30
	case PriorityMedium:
		return 20
	default:
		return 10
	}
}

type Requisition struct {
	Key        string
	Title      string
	Department string
	Level      string
	Location   string
	Recruiter  string
	Priority   Priority
	Status     ReqStatus
	OpenedAt   time.Time
	TargetDate *time.Time
	FilledAt   *time.Time
}

type Candidate struct {
	Key            string
	ReqKey         string
	Name           string
	Source         string
	Stage          Stage
	StageEnteredAt time.Time
	Active         bool
}

// EventType classifies a snapshot-diff change event.
type EventType string

const (
	EventCandidateAdded   EventType = "candidate_added"
	EventStageChanged     EventType = "stage_changed"
	EventCandidateDropped EventType = "candidate_dropped"
	EventReqOpened        EventType = "req_opened"
	EventReqFilled        EventType = "req_filled"
	EventReqCancelled     EventType = "req_cancelled"
	EventReqReopened      EventType = "req_reopened"
)

type StageEvent struct {
	ReqKey       string
	CandidateKey string
	Type         EventType
	From         string
	To           string
	OccurredAt   time.Time
}

// DaysBetween returns fractional days from a to b; negative when b precedes a.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}
