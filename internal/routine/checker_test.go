package routine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport records sends and optionally fails them.
type fakeTransport struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	subject    string
	body       string
	recipients []string
}

func (f *fakeTransport) Send(subject, htmlBody string, recipients []string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{subject, htmlBody, recipients})
	return nil
}

// monday is a known Monday used to pin weekday logic.
var monday = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func newDailyRoutine(name string) model.Routine {
	r := model.NewRoutine(name)
	r.Recipients = []string{"team@example.com"}
	return r
}

func TestDueDaily(t *testing.T) {
	r := newDailyRoutine("standup")

	assert.True(t, Due(r, monday))
	assert.False(t, Due(r, monday.Add(time.Minute)), "one minute late must not fire")
	assert.False(t, Due(r, monday.Add(-time.Minute)))

	r.Enabled = false
	assert.False(t, Due(r, monday))
}

func TestDueAtMostOncePerDay(t *testing.T) {
	r := newDailyRoutine("standup")
	r.LastSentDate = dateutil.FromTime(monday)
	assert.False(t, Due(r, monday))

	// A send recorded yesterday does not block today.
	r.LastSentDate = dateutil.FromTime(monday).AddDays(-1)
	assert.True(t, Due(r, monday))
}

func TestDueOnce(t *testing.T) {
	r := newDailyRoutine("handover")
	r.Repeat = model.RepeatOnce
	r.SendDate = dateutil.FromTime(monday)

	assert.True(t, Due(r, monday))
	assert.False(t, Due(r, monday.AddDate(0, 0, 1)))
}

func TestDueWeekly(t *testing.T) {
	r := newDailyRoutine("recap")
	r.Repeat = model.RepeatWeekly
	r.Weekdays = []string{"monday", "friday"}

	assert.True(t, Due(r, monday))
	assert.False(t, Due(r, monday.AddDate(0, 0, 1)), "tuesday is not selected")
	assert.True(t, Due(r, monday.AddDate(0, 0, 4)), "friday is selected")
}

func TestDueUnknownRepeatKind(t *testing.T) {
	r := newDailyRoutine("broken")
	r.Repeat = "fortnightly"
	assert.False(t, Due(r, monday))
}

func TestCheckSendsAndRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	tasks, err := store.Open(dir)
	require.NoError(t, err)

	task := model.NewTask("write minutes", "", "LB", dateutil.FromTime(monday))
	tasks.AddTask(task)

	routines := OpenStore(dir)
	require.NoError(t, routines.Add(newDailyRoutine("standup")))

	transport := &fakeTransport{}
	checker := NewChecker(tasks, routines, transport)

	results := checker.Check(monday)
	require.Len(t, results, 1)
	assert.True(t, results[0].Sent)

	require.Len(t, transport.sent, 1)
	mail := transport.sent[0]
	assert.Equal(t, "[routine] 2026-03-02 Daily report", mail.subject)
	assert.Equal(t, []string{"team@example.com"}, mail.recipients)
	assert.Contains(t, mail.body, "write minutes")

	r := routines.List()[0]
	assert.Equal(t, "2026-03-02", r.LastSentDate.String())
	assert.Equal(t, "09:00", r.LastSentTime)
	assert.Equal(t, 1, r.TotalSent)

	// History survives a reload.
	reloaded := OpenStore(dir)
	require.Len(t, reloaded.List(), 1)
	assert.Equal(t, 1, reloaded.List()[0].TotalSent)

	// The same minute cannot fire twice.
	assert.Empty(t, checker.Check(monday))
}

func TestCheckFailedSendKeepsHistoryClean(t *testing.T) {
	dir := t.TempDir()
	tasks, err := store.Open(dir)
	require.NoError(t, err)

	routines := OpenStore(dir)
	require.NoError(t, routines.Add(newDailyRoutine("standup")))

	transport := &fakeTransport{err: errors.New("smtp down")}
	checker := NewChecker(tasks, routines, transport)

	results := checker.Check(monday)
	require.Len(t, results, 1)
	assert.False(t, results[0].Sent)
	assert.Error(t, results[0].Err)

	r := routines.List()[0]
	assert.True(t, r.LastSentDate.IsZero())
	assert.Equal(t, 0, r.TotalSent)

	// The routine stays eligible, so a later tick can retry tomorrow.
	transport.err = nil
	tomorrow := monday.AddDate(0, 0, 1)
	results = checker.Check(tomorrow)
	require.Len(t, results, 1)
	assert.True(t, results[0].Sent)
}

func TestCheckAppliesCategoryFilter(t *testing.T) {
	dir := t.TempDir()
	tasks, err := store.Open(dir)
	require.NoError(t, err)

	date := dateutil.FromTime(monday)
	tasks.AddTask(model.NewTask("lb work", "", "LB", date))
	tasks.AddTask(model.NewTask("test work", "", "Tester", date))

	r := newDailyRoutine("lb only")
	r.SelectedCategories = model.CategoryFilter{"LB"}
	routines := OpenStore(dir)
	require.NoError(t, routines.Add(r))

	transport := &fakeTransport{}
	checker := NewChecker(tasks, routines, transport)
	require.Len(t, checker.Check(monday), 1)

	require.Len(t, transport.sent, 1)
	body := transport.sent[0].body
	assert.Contains(t, body, "lb work")
	assert.NotContains(t, body, "test work")
}

func TestCheckCustomSubjectAndMemo(t *testing.T) {
	dir := t.TempDir()
	tasks, err := store.Open(dir)
	require.NoError(t, err)

	r := newDailyRoutine("standup")
	r.Subject = "Morning summary"
	r.Memo = "bring coffee"
	routines := OpenStore(dir)
	require.NoError(t, routines.Add(r))

	transport := &fakeTransport{}
	checker := NewChecker(tasks, routines, transport)
	require.Len(t, checker.Check(monday), 1)

	mail := transport.sent[0]
	assert.True(t, strings.HasPrefix(mail.subject, "[routine] Morning summary"))
	assert.Contains(t, mail.body, "bring coffee")
}

func TestStoreValidateOnAdd(t *testing.T) {
	routines := OpenStore(t.TempDir())

	bad := model.NewRoutine("no recipients")
	assert.Error(t, routines.Add(bad))
	assert.Empty(t, routines.List())
}

func TestStoreUpdateAndDelete(t *testing.T) {
	routines := OpenStore(t.TempDir())

	r := newDailyRoutine("standup")
	require.NoError(t, routines.Add(r))

	changed := r
	changed.SendTime = "10:30"
	require.NoError(t, routines.Update(r.ID, changed))
	got, ok := routines.Get(r.ID)
	require.True(t, ok)
	assert.Equal(t, "10:30", got.SendTime)

	assert.Error(t, routines.Update("missing", changed))

	assert.True(t, routines.Delete(r.ID))
	assert.False(t, routines.Delete(r.ID))
	assert.Empty(t, routines.List())
}

func TestStoreCorruptFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "daily_routines.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0644))
	routines := OpenStore(dir)
	assert.Empty(t, routines.List())
}
