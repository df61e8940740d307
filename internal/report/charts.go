package report

import (
	"io"
	"strconv"
	"sync"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Идентификаторы «холстов» панели.
const (
	CanvasTaskStatus  = "chart-status"
	CanvasWeekly      = "chart-weekly"
	CanvasMonthly     = "chart-monthly"
	CanvasCollections = "chart-collections"
	CanvasPriorities  = "chart-priorities"
)

// Board держит не больше одного графика на холст.
// Повторная отрисовка на том же холсте заменяет прежний график.
type Board struct {
	mu     sync.Mutex
	title  string
	order  []string
	charts map[string]components.Charter
}

func NewBoard(title string) *Board {
	return &Board{title: title, charts: map[string]components.Charter{}}
}

// Render привязывает график к холсту, вытесняя предыдущий.
func (b *Board) Render(canvas string, c components.Charter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.charts[canvas]; !ok {
		b.order = append(b.order, canvas)
	}
	b.charts[canvas] = c
}

// Len — количество активных графиков.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.charts)
}

// Canvases — холсты в порядке первой отрисовки.
func (b *Board) Canvases() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.order...)
}

// WriteHTML отдаёт страницу со всеми текущими графиками.
func (b *Board) WriteHTML(w io.Writer) error {
	b.mu.Lock()
	list := make([]components.Charter, 0, len(b.order))
	for _, id := range b.order {
		list = append(list, b.charts[id])
	}
	b.mu.Unlock()

	page := components.NewPage()
	page.PageTitle = b.title
	page.AddCharts(list...)
	return page.Render(w)
}

// DashboardCharts рисует три графика главной панели.
func DashboardCharts(b *Board, m Metrics) {
	b.Render(CanvasTaskStatus, taskStatusDonut(m))
	b.Render(CanvasWeekly, weeklyBar(m))
	b.Render(CanvasMonthly, monthlyLine(m))
}

// ReportCharts — графики панели плюс распределения по коллекциям и приоритетам.
func ReportCharts(b *Board, m Metrics) {
	DashboardCharts(b, m)
	b.Render(CanvasCollections, collectionsDonut(m))
	b.Render(CanvasPriorities, prioritiesBar(m))
}

func donut(id, title string, items []opts.PieData) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{ChartID: id}),
		charts.WithTitleOpts(opts.Title{Title: title}),
	)
	pie.AddSeries(title, items).SetSeriesOptions(
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"45%", "70%"}}),
	)
	return pie
}

func taskStatusDonut(m Metrics) *charts.Pie {
	return donut(CanvasTaskStatus, "Status das tarefas ("+strconv.Itoa(m.CompletionRate)+"% concluídas)", []opts.PieData{
		{Name: "Concluídas", Value: m.TasksCompleted, ItemStyle: &opts.ItemStyle{Color: "#10b981"}},
		{Name: "Pendentes", Value: m.TasksPending, ItemStyle: &opts.ItemStyle{Color: "#f59e0b"}},
		{Name: "Atrasadas", Value: m.TasksOverdue, ItemStyle: &opts.ItemStyle{Color: "#ef4444"}},
	})
}

func collectionsDonut(m Metrics) *charts.Pie {
	return donut(CanvasCollections, "Registros", []opts.PieData{
		{Name: "Atendimentos", Value: m.Tickets},
		{Name: "Tarefas", Value: m.Tasks},
		{Name: "Documentos", Value: m.Documents},
	})
}

func weeklyBar(m Metrics) *charts.Bar {
	labels := make([]string, 0, len(m.Weekly))
	tickets := make([]opts.BarData, 0, len(m.Weekly))
	tasks := make([]opts.BarData, 0, len(m.Weekly))
	for _, p := range m.Weekly {
		labels = append(labels, p.Label)
		tickets = append(tickets, opts.BarData{Value: p.Tickets})
		tasks = append(tasks, opts.BarData{Value: p.Tasks})
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{ChartID: CanvasWeekly}),
		charts.WithTitleOpts(opts.Title{Title: "Últimos 7 dias"}),
	)
	bar.SetXAxis(labels).
		AddSeries("Atendimentos", tickets).
		AddSeries("Tarefas", tasks)
	return bar
}

func monthlyLine(m Metrics) *charts.Line {
	labels := make([]string, 0, len(m.Monthly))
	tickets := make([]opts.LineData, 0, len(m.Monthly))
	tasks := make([]opts.LineData, 0, len(m.Monthly))
	for _, p := range m.Monthly {
		labels = append(labels, p.Label)
		tickets = append(tickets, opts.LineData{Value: p.Tickets})
		tasks = append(tasks, opts.LineData{Value: p.Tasks})
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{ChartID: CanvasMonthly}),
		charts.WithTitleOpts(opts.Title{Title: "Tendência (6 meses)"}),
	)
	line.SetXAxis(labels).
		AddSeries("Atendimentos", tickets).
		AddSeries("Tarefas", tasks)
	return line
}

func prioritiesBar(m Metrics) *charts.Bar {
	labels := make([]string, 0, len(m.Priorities))
	data := make([]opts.BarData, 0, len(m.Priorities))
	for _, p := range m.Priorities {
		labels = append(labels, p.Label)
		data = append(data, opts.BarData{Value: p.Count})
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{ChartID: CanvasPriorities}),
		charts.WithTitleOpts(opts.Title{Title: "Distribuição por prioridade"}),
	)
	bar.SetXAxis(labels).AddSeries("Registros", data)
	return bar
}
