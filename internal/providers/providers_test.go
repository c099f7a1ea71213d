package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

const rosterHeader = "LibCode,Name,Release,URL,RequestorID,RequestorName,RequestorEmail,CustomerID,CustomerName,JR1,JR2,DB1,DB2,DB3,WSUsername,WSPassword"

func writeRoster(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sushiconfig.csv")
	content := rosterHeader + "\n"
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_CSV(t *testing.T) {
	path := writeRoster(t,
		"MAIN,Acme,3,https://sushi.acme.example/soap,req-1,Req Name,req@example.edu,cust-1,Main Library,Y,,y,,Yes,alice,s3cret",
	)

	providers, issues, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("issues: %v", issues)
	}
	if len(providers) != 1 {
		t.Fatalf("providers: %d", len(providers))
	}

	p := providers[0]
	if p.LibCode != "MAIN" || p.Name != "Acme" || p.URL != "https://sushi.acme.example/soap" {
		t.Errorf("identity: %+v", p)
	}
	if p.RequestorID != "req-1" || p.CustomerID != "cust-1" || p.CustomerName != "Main Library" {
		t.Errorf("request fields: %+v", p)
	}
	// Flags are prefix-y, case-insensitive, named by the header column.
	if len(p.Reports) != 3 || p.Reports[0] != "JR1" || p.Reports[1] != "DB1" || p.Reports[2] != "DB3" {
		t.Errorf("reports: %v", p.Reports)
	}
	if p.WSUsername != "alice" || p.WSPassword != "s3cret" {
		t.Errorf("ws credentials: %q %q", p.WSUsername, p.WSPassword)
	}
	if p.Line != 1 {
		t.Errorf("line: %d", p.Line)
	}
}

func TestLoad_ShortRowIsIssue(t *testing.T) {
	path := writeRoster(t,
		"MAIN,Acme,3,https://sushi.acme.example/soap,req-1,Req Name,req@example.edu,cust-1,Main Library,Y,,y,,n",
		"SHORT,row",
	)

	providers, issues, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(providers) != 1 {
		t.Fatalf("providers: %d", len(providers))
	}
	if len(issues) != 1 {
		t.Fatalf("issues: %v", issues)
	}
	if got := issues[0].String(); got != "Line 2 has insufficient data" {
		t.Errorf("issue: %q", got)
	}
}

func TestLoad_NoCredentialsWithoutBoth(t *testing.T) {
	path := writeRoster(t,
		"MAIN,Acme,3,url,r,,,c,,Y,,,,,alice,",
	)
	providers, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if providers[0].WSUsername != "" {
		t.Error("username without password should be dropped")
	}
}

func TestLoad_XLSX(t *testing.T) {
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	header := []any{"LibCode", "Name", "Release", "URL", "RequestorID", "RequestorName",
		"RequestorEmail", "CustomerID", "CustomerName", "JR1", "JR2", "DB1", "DB2", "DB3"}
	row := []any{"MAIN", "Acme", "3", "url", "r", "", "", "c", "", "Y", "", "", "", "y"}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatal(err)
	}
	if err := wb.SetSheetRow(sheet, "A2", &row); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sushiconfig.xlsx")
	if err := wb.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	providers, issues, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("issues: %v", issues)
	}
	if len(providers) != 1 || providers[0].LibCode != "MAIN" {
		t.Fatalf("providers: %+v", providers)
	}
	if len(providers[0].Reports) != 2 || providers[0].Reports[1] != "DB3" {
		t.Errorf("reports: %v", providers[0].Reports)
	}
}

func TestLoad_EmptyRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	os.WriteFile(path, nil, 0o644)
	if _, _, err := Load(path); err == nil {
		t.Fatal("expected error for empty roster")
	}
}

func TestFilter(t *testing.T) {
	all := []Provider{{LibCode: "MAIN"}, {LibCode: "West"}, {LibCode: "EAST"}}

	if got := Filter(all, nil); len(got) != 3 {
		t.Fatalf("empty allow-list should keep all, got %d", len(got))
	}
	got := Filter(all, []string{"west", " EAST "})
	if len(got) != 2 || got[0].LibCode != "West" || got[1].LibCode != "EAST" {
		t.Fatalf("filtered: %+v", got)
	}
}
