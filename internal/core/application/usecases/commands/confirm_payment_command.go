package commands

import (
	"errors"

	"freight/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
	ErrPaymentReferenceIsRequired = errors.New("payment reference is required")
)

// ConfirmPaymentCommand represents one delivery of the payment gateway's
// "order paid" event. The gateway may deliver the same reference many times
// and in any order; the handler is safe under arbitrary duplication.
//
// Example:
//
//	cmd, err := NewConfirmPaymentCommand("pay_9f3a71")
//	if err != nil {
//	    return fmt.Errorf("invalid payment event: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("payment confirmation failed: %w", err)
//	}
//	switch result.Outcome {
//	case OutcomeMaterialized:
//	    fmt.Printf("shipment %s created", result.ShipmentID)
//	case OutcomeAlreadyProcessed, OutcomeNoMatchingDraft:
//	    // duplicate or stale event, nothing to do
//	}
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentReference string

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command for one payment-confirmed event.
// Validates that the payment reference is not empty.
func NewConfirmPaymentCommand(paymentReference string) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPaymentReference(paymentReference); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// PaymentReference returns the external gateway reference of the paid order.
func (c ConfirmPaymentCommand) PaymentReference() string {
	return c.paymentReference
}

func (c *ConfirmPaymentCommand) setPaymentReference(ref string) error {
	if ref == "" {
		return ErrPaymentReferenceIsRequired
	}
	c.paymentReference = ref
	return nil
}
