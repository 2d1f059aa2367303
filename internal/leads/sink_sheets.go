package leads

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultSheetTab is the worksheet rows are appended to when none is configured.
const DefaultSheetTab = "Leads"

// SheetsConfig holds the service-account credentials for the lead spreadsheet.
type SheetsConfig struct {
	ClientEmail   string
	PrivateKey    string
	SpreadsheetID string
	Tab           string
}

// Configured reports whether every credential needed to append is present.
func (c SheetsConfig) Configured() bool {
	return strings.TrimSpace(c.ClientEmail) != "" &&
		strings.TrimSpace(c.PrivateKey) != "" &&
		strings.TrimSpace(c.SpreadsheetID) != ""
}

func (c SheetsConfig) tab() string {
	if t := strings.TrimSpace(c.Tab); t != "" {
		return t
	}
	return DefaultSheetTab
}

// SheetsSink appends one row per lead to a Google Sheet.
type SheetsSink struct {
	svc           *sheets.Service
	spreadsheetID string
	tab           string
}

// NewSheetsSink authenticates with a service-account JWT and builds the
// Sheets client. Escaped newlines in the private key are expanded so keys
// can travel through single-line env files.
func NewSheetsSink(ctx context.Context, cfg SheetsConfig, opts ...option.ClientOption) (*SheetsSink, error) {
	if !cfg.Configured() {
		return nil, ErrSinkNotConfigured
	}

	jwtCfg := &jwt.Config{
		Email:      strings.TrimSpace(cfg.ClientEmail),
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	opts = append([]option.ClientOption{option.WithHTTPClient(jwtCfg.Client(ctx))}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("leads: sheets client: %w", err)
	}
	return NewSheetsSinkWithService(svc, cfg.SpreadsheetID, cfg.tab()), nil
}

// NewSheetsSinkWithService wraps an existing Sheets client.
func NewSheetsSinkWithService(svc *sheets.Service, spreadsheetID, tab string) *SheetsSink {
	if strings.TrimSpace(tab) == "" {
		tab = DefaultSheetTab
	}
	return &SheetsSink{svc: svc, spreadsheetID: strings.TrimSpace(spreadsheetID), tab: tab}
}

func (s *SheetsSink) Name() string { return "sheets" }

// Deliver appends the lead as a row after the last non-empty row of the tab.
func (s *SheetsSink) Deliver(ctx context.Context, lead Lead) (bool, error) {
	if s == nil || s.svc == nil || s.spreadsheetID == "" {
		return false, nil
	}

	row := &sheets.ValueRange{Values: [][]interface{}{sheetRow(lead)}}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.tab+"!A:A", row).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("leads: sheets append: %w", err)
	}
	return true, nil
}

func sheetRow(lead Lead) []interface{} {
	return []interface{}{
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Budget,
		lead.Message,
		lead.CreatedAtISO(),
		lead.SourceIP,
		lead.UserAgent,
	}
}
