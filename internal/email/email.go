package email

import (
	"context"
	"fmt"

	"github.com/skytrip/flightcrm/internal/kafka"
)

// Sender notifies the admin mailbox about new public submissions. The actual
// SMTP delivery is stubbed; the worker only needs the hook point.
type Sender struct {
	adminAddress string
}

func NewSender(adminAddress string) *Sender {
	return &Sender{adminAddress: adminAddress}
}

func (s *Sender) Send(ctx context.Context, event kafka.DomainEvent) error {
	fmt.Printf("notify %s: %s for %s %d (submitter %s)\n", s.adminAddress, event.Type, event.Entity, event.EntityID, event.Email)
	return nil
}
