package main

import (
	"github.com/sirupsen/logrus"
)

// phase tracks the node's pre-start lifecycle. Transitions are strictly
// forward and single-pass; on failure the process exits and the
// orchestrator's restart policy retries the whole sequence from scratch.
type phase string

const (
	phaseUninitialized     phase = "Uninitialized"
	phaseIdentityComputed  phase = "IdentityComputed"
	phaseStorageReconciled phase = "StorageReconciled"
	phaseReady             phase = "Ready"
)

type sequence struct {
	current phase
}

func newSequence() *sequence {
	return &sequence{current: phaseUninitialized}
}

func (s *sequence) advance(next phase) {
	logrus.WithFields(logrus.Fields{"from": s.current, "to": next}).Debug("bootstrap phase transition")
	s.current = next
}
