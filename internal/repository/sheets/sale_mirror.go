package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ssemanda/boutique/internal/config"
	"github.com/ssemanda/boutique/internal/domain/models"
)

// salesRange holds one row per order, same columns as the CSV export.
const salesRange = "Sales!A:E"

const dateLayout = "2006-01-02"

// RowAppender mirrors sale rows to an external spreadsheet. Mirroring is
// best-effort; the sale itself never depends on it.
type RowAppender interface {
	AppendSaleRow(ctx context.Context, order models.Order) error
}

// GoogleSheetMirror implements RowAppender using the official Google Sheets API.
type GoogleSheetMirror struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetMirror builds a Google Sheets backed mirror instance.
func NewGoogleSheetMirror(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetMirror, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetMirror{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSaleRow appends the order as one row to the sales sheet.
func (m *GoogleSheetMirror) AppendSaleRow(ctx context.Context, order models.Order) error {
	values := []interface{}{
		order.Date.Format(dateLayout),
		order.ProductName,
		order.Quantity,
		order.TotalAmount,
		string(order.Status),
	}
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := m.service.Spreadsheets.Values.Append(m.spreadsheetID, salesRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append sale row into range %s: %w", salesRange, err)
	}

	m.logger.Debug("sale row mirrored to sheet", zap.String("order_id", order.ID))
	return nil
}
