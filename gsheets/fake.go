package gsheets

import (
	"context"
	"fmt"
	"sync"
)

// Fake is an in-memory Service for tests. Clear and write faults can be
// injected, and every call is recorded in Calls.
type Fake struct {
	ListError  error
	ClearError error
	WriteError error

	// Gate, if not nil, blocks OpenSpreadsheet until it is closed or the
	// context is cancelled.
	Gate chan struct{}

	// AfterClear, if not nil, is invoked after a successful Clear.
	AfterClear func()

	Calls []string

	spreadsheets []*fakeSpreadsheet
	sync.Mutex
}

type fakeSpreadsheet struct {
	id    string
	title string
	tabs  []*fakeTab
}

type fakeTab struct {
	id    int64
	title string
	rows  [][]any
}

func NewFake() *Fake {
	return &Fake{}
}

// AddTab creates the spreadsheet and worksheet if they do not already exist
// and sets the worksheet contents.
func (f *Fake) AddTab(spreadsheet, tab string, rows [][]any) {
	f.Lock()
	defer f.Unlock()

	s := f.spreadsheet(spreadsheet)
	if s == nil {
		s = &fakeSpreadsheet{
			id:    fmt.Sprintf("fake-%d", len(f.spreadsheets)+1),
			title: spreadsheet,
		}

		f.spreadsheets = append(f.spreadsheets, s)
	}

	for _, t := range s.tabs {
		if t.title == tab {
			t.rows = rows
			return
		}
	}

	s.tabs = append(s.tabs, &fakeTab{
		id:    int64(len(s.tabs)),
		title: tab,
		rows:  rows,
	})
}

// Contents returns the current contents of a worksheet.
func (f *Fake) Contents(spreadsheet, tab string) [][]any {
	f.Lock()
	defer f.Unlock()

	if s := f.spreadsheet(spreadsheet); s != nil {
		for _, t := range s.tabs {
			if t.title == tab {
				return t.rows
			}
		}
	}

	return nil
}

// Called returns true if the named operation was invoked.
func (f *Fake) Called(op string) bool {
	f.Lock()
	defer f.Unlock()

	for _, c := range f.Calls {
		if c == op {
			return true
		}
	}

	return false
}

func (f *Fake) ListSpreadsheets(ctx context.Context) ([]string, error) {
	f.Lock()
	defer f.Unlock()

	f.Calls = append(f.Calls, "list-spreadsheets")

	if f.ListError != nil {
		return nil, f.ListError
	}

	titles := []string{}
	for _, s := range f.spreadsheets {
		titles = append(titles, s.title)
	}

	return titles, nil
}

func (f *Fake) OpenSpreadsheet(ctx context.Context, title string) (Spreadsheet, error) {
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return Spreadsheet{}, ctx.Err()
		}
	}

	f.Lock()
	defer f.Unlock()

	f.Calls = append(f.Calls, "open-spreadsheet")

	if s := f.spreadsheet(title); s != nil {
		return Spreadsheet{ID: s.id, Title: s.title}, nil
	}

	return Spreadsheet{}, fmt.Errorf("spreadsheet '%s' %w", title, ErrNotFound)
}

func (f *Fake) ListTabs(ctx context.Context, spreadsheet Spreadsheet) ([]string, error) {
	f.Lock()
	defer f.Unlock()

	f.Calls = append(f.Calls, "list-tabs")

	s := f.spreadsheet(spreadsheet.Title)
	if s == nil {
		return nil, fmt.Errorf("spreadsheet '%s' %w", spreadsheet.Title, ErrNotFound)
	}

	titles := []string{}
	for _, t := range s.tabs {
		titles = append(titles, t.title)
	}

	return titles, nil
}

func (f *Fake) OpenTab(ctx context.Context, spreadsheet Spreadsheet, title string) (Tab, error) {
	f.Lock()
	defer f.Unlock()

	f.Calls = append(f.Calls, "open-tab")

	if s := f.spreadsheet(spreadsheet.Title); s != nil {
		for _, t := range s.tabs {
			if t.title == title {
				return Tab{
					SpreadsheetID: s.id,
					SheetID:       t.id,
					Title:         t.title,
					Rows:          int64(len(t.rows)),
				}, nil
			}
		}
	}

	return Tab{}, fmt.Errorf("worksheet '%s' %w", title, ErrNotFound)
}

func (f *Fake) Clear(ctx context.Context, tab Tab) error {
	if err := f.clear(ctx, tab); err != nil {
		return err
	}

	if f.AfterClear != nil {
		f.AfterClear()
	}

	return nil
}

func (f *Fake) clear(ctx context.Context, tab Tab) error {
	f.Lock()
	defer f.Unlock()

	f.Calls = append(f.Calls, "clear")

	if err := ctx.Err(); err != nil {
		return err
	}

	if f.ClearError != nil {
		return f.ClearError
	}

	if t := f.tab(tab); t != nil {
		t.rows = nil
	}

	return nil
}

func (f *Fake) WriteBlock(ctx context.Context, tab Tab, origin string, rows [][]any) error {
	f.Lock()
	defer f.Unlock()

	f.Calls = append(f.Calls, "write")

	if err := ctx.Err(); err != nil {
		return err
	}

	if f.WriteError != nil {
		return f.WriteError
	}

	if origin != Origin {
		return fmt.Errorf("unsupported origin '%s'", origin)
	}

	if t := f.tab(tab); t != nil {
		t.rows = rows
	}

	return nil
}

func (f *Fake) spreadsheet(title string) *fakeSpreadsheet {
	for _, s := range f.spreadsheets {
		if s.title == title {
			return s
		}
	}

	return nil
}

func (f *Fake) tab(tab Tab) *fakeTab {
	for _, s := range f.spreadsheets {
		if s.id == tab.SpreadsheetID {
			for _, t := range s.tabs {
				if t.id == tab.SheetID {
					return t
				}
			}
		}
	}

	return nil
}
