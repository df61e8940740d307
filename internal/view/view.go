// Package view — переключение страниц приложения за воротами сессии.
package view

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Page string

const (
	PageLogin        Page = "login"
	PageDashboard    Page = "dashboard"
	PageAtendimentos Page = "atendimentos"
	PageTarefas      Page = "tarefas"
	PageDocumentos   Page = "documentos"
	PageRelatorios   Page = "relatorios"
)

// Pages — пункты навигации в порядке меню.
var Pages = []Page{PageDashboard, PageAtendimentos, PageTarefas, PageDocumentos, PageRelatorios}

var subtitles = map[Page]string{
	PageLogin:        "Acesse sua conta",
	PageDashboard:    "Visão geral do sistema",
	PageAtendimentos: "Gerencie atendimentos e arquivos",
	PageTarefas:      "Tarefas e prazos",
	PageDocumentos:   "Arquivos enviados",
	PageRelatorios:   "Relatórios e exportações",
}

var (
	ErrLoginRequired = errors.New("login required")
	ErrUnknownPage   = errors.New("unknown page")
)

// ParsePage разбирает имя страницы без учёта регистра.
func ParsePage(s string) (Page, error) {
	p := Page(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := subtitles[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, s)
	}
	return p, nil
}

// Title — заголовок страницы: имя маршрута с заглавной буквы.
func Title(p Page) string {
	return cases.Title(language.BrazilianPortuguese).String(string(p))
}

func Subtitle(p Page) string { return subtitles[p] }

// NavItem — пункт меню.
type NavItem struct {
	Page   Page
	Title  string
	Active bool
}

// Router хранит текущую страницу. Истории переходов нет.
type Router struct {
	mu      sync.Mutex
	current Page
}

func NewRouter() *Router {
	return &Router{current: PageLogin}
}

// Show переключает страницу. Любая страница, кроме login, требует сессии:
// без неё роутер возвращается на login и отдаёт ErrLoginRequired.
func (r *Router) Show(p Page, loggedIn bool) error {
	if _, ok := subtitles[p]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPage, p)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p != PageLogin && !loggedIn {
		r.current = PageLogin
		return ErrLoginRequired
	}
	r.current = p
	return nil
}

// Reset возвращает на экран входа (после выхода).
func (r *Router) Reset() {
	r.mu.Lock()
	r.current = PageLogin
	r.mu.Unlock()
}

func (r *Router) Current() Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Nav — меню с подсвеченной текущей страницей.
func (r *Router) Nav() []NavItem {
	cur := r.Current()
	out := make([]NavItem, 0, len(Pages))
	for _, p := range Pages {
		out = append(out, NavItem{Page: p, Title: Title(p), Active: p == cur})
	}
	return out
}
