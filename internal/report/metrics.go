// Package report считает показатели панели и строит по ним графики и выгрузки.
package report

import (
	"RGFlow/internal/model"
	"math"
	"sort"
	"time"
)

var (
	weekdayLabels = [...]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}
	monthLabels   = [...]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}
)

// PeriodCount — сколько атендиментов и задач создано за период (день или месяц).
type PeriodCount struct {
	Label   string    `json:"label"`
	Start   time.Time `json:"start"`
	Tickets int       `json:"tickets"`
	Tasks   int       `json:"tasks"`
}

// LabelCount — пара метка/количество для распределений.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Metrics — показатели панели, полностью выведенные из сохранённых данных.
type Metrics struct {
	GeneratedAt time.Time `json:"generated_at"`

	Tickets       int `json:"tickets"`
	Tasks         int `json:"tasks"`
	Documents     int `json:"documents"`
	Notifications int `json:"notifications"`

	TasksCompleted int `json:"tasks_completed"`
	// TasksPending — открытые задачи без просрочки; просроченные считаются отдельно.
	TasksPending   int `json:"tasks_pending"`
	TasksOverdue   int `json:"tasks_overdue"`
	CompletionRate int `json:"completion_rate"`

	UnreadNotifications int `json:"unread_notifications"`

	DocumentBytes   int64        `json:"document_bytes"`
	DocumentsByMime []LabelCount `json:"documents_by_mime"`
	Priorities      []LabelCount `json:"priorities"`

	Weekly  []PeriodCount `json:"weekly"`
	Monthly []PeriodCount `json:"monthly"`
}

// ComputeMetrics — чистая функция: одинаковые state и now дают одинаковый результат.
func ComputeMetrics(st model.State, now time.Time) Metrics {
	now = now.UTC()
	m := Metrics{
		GeneratedAt:   now,
		Tickets:       len(st.Tickets),
		Tasks:         len(st.Tasks),
		Documents:     len(st.Documents),
		Notifications: len(st.Notifications),
	}

	for _, t := range st.Tasks {
		switch {
		case t.Done:
			m.TasksCompleted++
		case t.Overdue(now):
			m.TasksOverdue++
		default:
			m.TasksPending++
		}
	}
	m.CompletionRate = completionRate(m.TasksCompleted, m.Tasks)

	for _, n := range st.Notifications {
		if !n.Read {
			m.UnreadNotifications++
		}
	}

	byMime := map[string]int{}
	for _, d := range st.Documents {
		m.DocumentBytes += d.SizeBytes
		byMime[d.MimeType]++
	}
	m.DocumentsByMime = sortedCounts(byMime)

	m.Priorities = priorityDistribution(st)
	m.Weekly = weekly(st, now)
	m.Monthly = monthly(st, now)
	return m
}

// completionRate — процент завершённых, округлённый; 0 при отсутствии задач.
func completionRate(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

func priorityDistribution(st model.State) []LabelCount {
	counts := map[model.Priority]int{}
	for _, t := range st.Tickets {
		counts[t.Priority]++
	}
	for _, t := range st.Tasks {
		counts[t.Priority]++
	}
	out := make([]LabelCount, 0, len(model.Priorities)+1)
	for _, p := range model.Priorities {
		out = append(out, LabelCount{Label: string(p), Count: counts[p]})
	}
	if n := counts[""]; n > 0 {
		out = append(out, LabelCount{Label: "Sem prioridade", Count: n})
	}
	return out
}

func sortedCounts(m map[string]int) []LabelCount {
	out := make([]LabelCount, 0, len(m))
	for k, v := range m {
		out = append(out, LabelCount{Label: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// weekly — последние 7 календарных дней (UTC), сегодня последним.
func weekly(st model.State, now time.Time) []PeriodCount {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]PeriodCount, 7)
	for i := range out {
		day := today.AddDate(0, 0, i-6)
		out[i] = PeriodCount{Label: weekdayLabels[day.Weekday()], Start: day}
	}
	bucket := func(ts time.Time) int {
		ts = ts.UTC()
		d := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		idx := 6 - int(today.Sub(d).Hours()/24)
		if idx < 0 || idx > 6 {
			return -1
		}
		return idx
	}
	for _, t := range st.Tickets {
		if i := bucket(t.CreatedAt); i >= 0 {
			out[i].Tickets++
		}
	}
	for _, t := range st.Tasks {
		if i := bucket(t.CreatedAt); i >= 0 {
			out[i].Tasks++
		}
	}
	return out
}

// monthly — последние 6 календарных месяцев, текущий последним.
func monthly(st model.State, now time.Time) []PeriodCount {
	cur := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]PeriodCount, 6)
	for i := range out {
		m := cur.AddDate(0, i-5, 0)
		out[i] = PeriodCount{Label: monthLabels[m.Month()-1], Start: m}
	}
	bucket := func(ts time.Time) int {
		ts = ts.UTC()
		diff := (cur.Year()-ts.Year())*12 + int(cur.Month()) - int(ts.Month())
		idx := 5 - diff
		if idx < 0 || idx > 5 {
			return -1
		}
		return idx
	}
	for _, t := range st.Tickets {
		if i := bucket(t.CreatedAt); i >= 0 {
			out[i].Tickets++
		}
	}
	for _, t := range st.Tasks {
		if i := bucket(t.CreatedAt); i >= 0 {
			out[i].Tasks++
		}
	}
	return out
}
