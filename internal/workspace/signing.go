package workspace

import (
	"context"
	"errors"
	"fmt"

	"github.com/venapictures/studio/internal/store"
)

// ErrUnknownDocument is returned by Sign for an unsupported document kind.
var ErrUnknownDocument = errors.New("unknown document kind")

// Documents the studio signs from the dashboard.
const (
	DocContract      = "contract"
	DocInvoice       = "invoice"
	DocReceipt       = "receipt"
	DocPaymentRecord = "payment-record"
)

// Sign stores the vendor signature on a document and raises the matching
// toast.
func (s *Shell) Sign(ctx context.Context, kind, id, signature string) error {
	var (
		err error
		msg string
	)
	switch kind {
	case DocContract:
		_, err = s.Contracts.Sync(ctx, id, store.Patch{"vendor_signature": signature})
		msg = "Tanda tangan berhasil disimpan."
	case DocInvoice:
		_, err = s.Projects.Sync(ctx, id, store.Patch{"invoice_signature": signature})
		msg = "Invoice berhasil ditandatangani."
	case DocReceipt:
		_, err = s.Transactions.Sync(ctx, id, store.Patch{"vendor_signature": signature})
		msg = "Kuitansi berhasil ditandatangani."
	case DocPaymentRecord:
		_, err = s.TeamPaymentRecords.Sync(ctx, id, store.Patch{"vendor_signature": signature})
		msg = "Slip pembayaran berhasil ditandatangani."
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDocument, kind)
	}
	if err != nil {
		s.toast.Notify("Error menyimpan tanda tangan")
		return err
	}
	s.toast.Notify(msg)
	return nil
}
