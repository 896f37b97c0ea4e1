package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"goclinic/internal/domain"
	apperror "goclinic/internal/errors"
	"goclinic/internal/pkg/logger"
)

// TokenSource fornece o token bearer corrente para as requisições.
// A implementação concreta lê do SessionStore; é assim que a sessão
// injetada chega até os fetchers, em vez de leituras globais ad hoc.
type TokenSource interface {
	Token() (string, error)
}

// Client é o cliente HTTP base de todos os fetchers de entidade.
// Ele cuida do que é comum a toda chamada: URL base, header Authorization,
// correlação por X-Request-ID, decodificação JSON e tradução de erros.
//
// Sem retry, sem cache, sem deduplicação: cada operação reemite suas
// requisições do zero, como o cliente original.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logger.Logger
}

// New cria o cliente base apontando para a API CareConnect.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  log,
	}
}

// Get faz um GET autenticado e decodifica o corpo 2xx em out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

// Post faz um POST autenticado com corpo JSON.
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

// PostPublic faz um POST sem header Authorization (login, signup, forgot).
func (c *Client) PostPublic(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out, false)
}

// Delete faz um DELETE autenticado; o corpo da resposta é descartado.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperror.NewInternalError("failed to encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperror.NewInternalError("failed to build request", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authenticated {
		token, err := c.tokens.Token()
		if err != nil {
			return err
		}
		if token == "" {
			// Curto-circuito: sem sessão não há chamada (§ erro de sessão).
			return apperror.NewSessionError("User not authenticated")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed: "+method+" "+path, err)
		return apperror.NewInternalError("request to API failed", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request", map[string]interface{}{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"request_id":  requestID,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewDecodeError("unexpected response body from "+path, err)
	}
	return nil
}

// errorFromResponse extrai a mensagem do envelope de erro da API e a
// preserva verbatim, pois ela é exibida ao usuário exatamente como veio.
func (c *Client) errorFromResponse(resp *http.Response) error {
	var envelope domain.ErrorResponse

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(data) > 0 {
		// Corpo de erro não-JSON é ignorado: fica só o status.
		_ = json.Unmarshal(data, &envelope)
	}

	return apperror.FromStatus(resp.StatusCode, envelope.Message)
}
