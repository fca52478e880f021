package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/eureka-residences/erkseed/client"
)

// Account is one row of the tenant accounts spreadsheet.
type Account struct {
	LastName  string
	FirstName string
	RoomID    string // e.g. eureka-h1, also the email local part
	Password  string
}

// Columns maps Account fields to spreadsheet header titles.
type Columns struct {
	LastName  string
	FirstName string
	RoomID    string
	Password  string
}

// DefaultColumns are the headers of the residence's accounts export.
var DefaultColumns = Columns{
	LastName:  "Nom Etudiant(e)",
	FirstName: "Prénom Etudiant(e)",
	RoomID:    "Identifiant EurekaNet",
	Password:  "Mot de passe par défaut",
}

// UserRequest builds the registration payload, email <room id>@domain.
func (a Account) UserRequest(domain string) client.CreateUserRequest {
	return client.CreateUserRequest{
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Email:      a.RoomID + "@" + domain,
		Password:   a.Password,
		RePassword: a.Password,
	}
}

// LoadAccounts reads accounts from the first sheet of an .xlsx file, or from
// a .csv file. The first row holds the headers; a header named in cols but
// absent from the file, like a missing cell, yields "". Rows with no cell at
// all are skipped.
func LoadAccounts(path string, cols Columns) ([]Account, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	default:
		rows, err = readXLSX(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load accounts %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("load accounts %s: file has no header row", path)
	}

	idx := headerIndex(rows[0])
	cell := func(row []string, title string) string {
		i, ok := idx[title]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	accounts := make([]Account, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		accounts = append(accounts, Account{
			LastName:  cell(row, cols.LastName),
			FirstName: cell(row, cols.FirstName),
			RoomID:    cell(row, cols.RoomID),
			Password:  cell(row, cols.Password),
		})
	}
	return accounts, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheet")
	}
	return f.GetRows(sheets[0])
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
