package template

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"sync"

	"github.com/ghaggin/tourpal/internal/model"
)

//go:embed tmpl/*.html
var files embed.FS

type NavLink struct {
	Path  string
	Label string
}

type Flash struct {
	Kind    string
	Message string
}

type Data struct {
	PageTitle string
	User      *model.User
	Nav       []NavLink
	Flash     *Flash
	Error     string
	Errors    []string
	// Page carries the page specific view model.
	Page any
}

var (
	mu    sync.Mutex
	cache = map[string]*template.Template{}
)

func lookup(tmpl string) (*template.Template, error) {
	mu.Lock()
	defer mu.Unlock()

	if t, ok := cache[tmpl]; ok {
		return t, nil
	}

	t, err := template.ParseFS(files,
		"tmpl/"+tmpl,
		"tmpl/base.html",
	)
	if err != nil {
		return nil, err
	}

	cache[tmpl] = t
	return t, nil
}

// Render executes tmpl inside the base layout and writes it with status.
// Nothing is written if execution fails.
func Render(w http.ResponseWriter, status int, tmpl string, td *Data) error {
	t, err := lookup(tmpl)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}

	err = t.ExecuteTemplate(buf, "base.html", td)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
