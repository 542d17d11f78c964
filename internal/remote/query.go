package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrMissingFilter evita updates/deletes sobre la tabla completa.
var ErrMissingFilter = errors.New("update and delete require a filter")

// Query arma una llamada sobre una tabla: select, insert, update o delete.
type Query struct {
	client  *Client
	table   string
	method  string
	params  url.Values
	filters int
	body    any
	single  bool
}

// From inicia una consulta sobre table.
func (c *Client) From(table string) *Query {
	return &Query{
		client: c,
		table:  table,
		method: http.MethodGet,
		params: url.Values{},
	}
}

func (q *Query) Select(columns string) *Query {
	q.method = http.MethodGet
	if columns == "" {
		columns = "*"
	}
	q.params.Set("select", columns)
	return q
}

func (q *Query) Insert(rows any) *Query {
	q.method = http.MethodPost
	q.body = rows
	return q
}

func (q *Query) Update(values any) *Query {
	q.method = http.MethodPatch
	q.body = values
	return q
}

func (q *Query) Delete() *Query {
	q.method = http.MethodDelete
	q.body = nil
	return q
}

// Eq filtra por column = value.
func (q *Query) Eq(column string, value any) *Query {
	q.params.Add(column, "eq."+fmt.Sprint(value))
	q.filters++
	return q
}

func (q *Query) Order(column string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.params.Set("order", column+"."+dir)
	return q
}

// Single pide exactamente una fila; cero filas es un error PGRST116.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

// Execute envia la consulta y decodifica la respuesta en out (puede ser nil).
// El token del usuario se toma del contexto (ver WithAccessToken).
func (q *Query) Execute(ctx context.Context, out any) error {
	if (q.method == http.MethodPatch || q.method == http.MethodDelete) && q.filters == 0 {
		return ErrMissingFilter
	}

	headers := map[string]string{"Accept": "application/json"}
	if q.single {
		headers["Accept"] = "application/vnd.pgrst.object+json"
	}
	if q.method != http.MethodGet {
		if out != nil {
			headers["Prefer"] = "return=representation"
		} else {
			headers["Prefer"] = "return=minimal"
		}
	}

	return q.client.do(ctx, request{
		method:  q.method,
		path:    "/rest/v1/" + url.PathEscape(q.table),
		query:   q.params.Encode(),
		body:    q.body,
		token:   AccessTokenFrom(ctx),
		headers: headers,
	}, out)
}
