package view

import (
	"context"
	"fmt"
	"io"

	"goclinic/internal/pkg/logger"
)

// State é o estado de exibição de uma página. A transição é estrita:
// Idle → Loading → (Success | Error). Nunca Success e Error ao mesmo
// tempo, e nada de dados é exibido fora de Success.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

// String devolve o nome do estado para logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Loader busca os dados de uma página.
type Loader[T any] func(ctx context.Context) (T, error)

// Renderer escreve os dados de uma página no writer.
type Renderer[T any] func(w io.Writer, data T) error

// Page dirige a máquina de estados de uma tela: dispara o Loader,
// espera o resultado e só então renderiza. Coleções vazias são Success
// (o Renderer decide a mensagem de vazio); erro vira UMA linha
// "Error: <mensagem>", com a mensagem do servidor ao pé da letra.
type Page struct {
	out    io.Writer
	logger logger.Logger
}

// NewPage cria e retorna uma nova instância da Página.
func NewPage(out io.Writer, log logger.Logger) *Page {
	return &Page{out: out, logger: log}
}

// Show executa o ciclo completo de uma página e devolve o estado final.
func Show[T any](p *Page, ctx context.Context, name string, load Loader[T], render Renderer[T]) (State, error) {
	state := StateIdle
	p.logger.Debug("page state", map[string]interface{}{"page": name, "state": state.String()})

	state = StateLoading
	p.logger.Debug("page state", map[string]interface{}{"page": name, "state": state.String()})

	data, err := load(ctx)
	if err != nil {
		state = StateError
		p.logger.Debug("page state", map[string]interface{}{"page": name, "state": state.String()})
		// A mensagem do servidor é exibida ao pé da letra, nunca reescrita.
		fmt.Fprintf(p.out, "Error: %s\n", err.Error())
		return state, err
	}

	state = StateSuccess
	p.logger.Debug("page state", map[string]interface{}{"page": name, "state": state.String()})
	if err := render(p.out, data); err != nil {
		return state, err
	}
	return state, nil
}
