package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// headerRow is the first row of every published tab.
var headerRow = []interface{}{"item_id", "group", "title", "qty", "unit_price", "amount", "note"}

// GoogleSyncer talks to the Google Sheets API using an OAuth token stored
// on disk. The token must have been obtained out of band for the sheets
// spreadsheets scope.
type GoogleSyncer struct {
	svc *sheetsapi.Service
}

// NewGoogleSyncer builds a syncer from a credentials JSON and a saved
// OAuth token file.
func NewGoogleSyncer(ctx context.Context, credentialsFile, tokenFile string) (*GoogleSyncer, error) {
	credentials, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read google credentials: %w", err)
	}
	oauthCfg, err := google.ConfigFromJSON(credentials, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse google credentials: %w", err)
	}

	tokenData, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read google token: %w", err)
	}
	token := &oauth2.Token{}
	if err := json.Unmarshal(tokenData, token); err != nil {
		return nil, fmt.Errorf("failed to parse google token: %w", err)
	}

	client := oauthCfg.Client(ctx, token)
	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &GoogleSyncer{svc: svc}, nil
}

var _ Syncer = (*GoogleSyncer)(nil)

func (g *GoogleSyncer) WriteRows(ctx context.Context, spreadsheetID, tabName string, rows []Row) error {
	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, headerRow)
	for _, row := range rows {
		values = append(values, []interface{}{
			row.StableItemID,
			row.GroupName,
			row.Title,
			row.Qty,
			row.UnitPrice,
			row.Amount.String(),
			row.Note,
		})
	}

	clearRange := fmt.Sprintf("%s!A:G", tabName)
	if _, err := g.svc.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheetsapi.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear sheet tab: %w", err)
	}
	body := &sheetsapi.ValueRange{Values: values}
	_, err := g.svc.Spreadsheets.Values.Update(spreadsheetID, fmt.Sprintf("%s!A1", tabName), body).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write sheet tab: %w", err)
	}
	return nil
}

func (g *GoogleSyncer) ReadRows(ctx context.Context, spreadsheetID, tabName string) ([]Row, error) {
	readRange := fmt.Sprintf("%s!A:G", tabName)
	resp, err := g.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet tab: %w", err)
	}

	rows := make([]Row, 0, len(resp.Values))
	for i, raw := range resp.Values {
		if i == 0 {
			// Header row.
			continue
		}
		cell := func(idx int) string {
			if idx < len(raw) {
				if s, ok := raw[idx].(string); ok {
					return s
				}
				return fmt.Sprint(raw[idx])
			}
			return ""
		}
		row := Row{
			StableItemID: cell(0),
			GroupName:    cell(1),
			Title:        cell(2),
			Qty:          cell(3),
			UnitPrice:    cell(4),
			Note:         cell(6),
		}
		if row.StableItemID == "" {
			continue
		}
		amount, err := decimal.NewFromString(cell(5))
		if err == nil {
			row.Amount = amount
		}
		rows = append(rows, row)
	}
	return rows, nil
}
