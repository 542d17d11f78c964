package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
	NoticeInfo    = "info"
)

// Notice es un mensaje que se muestra una sola vez en el siguiente render.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Data es lo que se guarda en el Store por cada sesion.
type Data struct {
	Token   string   `json:"token,omitempty"`
	Email   string   `json:"email,omitempty"`
	Notices []Notice `json:"notices,omitempty"`
}

func (d Data) clone() Data {
	out := d
	if d.Notices != nil {
		out.Notices = append([]Notice(nil), d.Notices...)
	}
	return out
}

// Session es la vista de solo lectura que reciben los handlers.
// Solo Manager la modifica.
type Session struct {
	id    string
	data  Data
	isNew bool
	saved bool
}

func (s *Session) ID() string { return s.id }

// IsNew indica que la cookie no existia o apuntaba a una sesion vencida.
func (s *Session) IsNew() bool { return s.isNew }

// Saved indica que la sesion se escribio en el store durante esta request;
// la cookie debe reenviarse para acompanar el TTL o el id nuevo.
func (s *Session) Saved() bool { return s.saved }

func (s *Session) Token() string { return s.data.Token }

func (s *Session) HasToken() bool { return s.data.Token != "" }

func (s *Session) Email() string { return s.data.Email }

// Manager es el unico escritor de sesiones.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Manager{store: store, ttl: ttl}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// New crea una sesion anonima sin persistirla.
func (m *Manager) New() *Session {
	return &Session{id: uuid.NewString(), isNew: true}
}

// Load recupera la sesion id; si no existe devuelve una nueva anonima.
func (m *Manager) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return m.New(), nil
	}
	data, ok, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return m.New(), nil
	}
	return &Session{id: id, data: data}, nil
}

// SetToken guarda el token de acceso, reemplazando cualquier token previo.
// La sesion pasa a un id nuevo: el id que traia el navegador deja de existir.
func (m *Manager) SetToken(ctx context.Context, s *Session, token, email string) error {
	next := s.data.clone()
	next.Token = token
	next.Email = email
	return m.rotate(ctx, s, next)
}

// Clear borra el token y rota el id; los avisos pendientes se conservan.
func (m *Manager) Clear(ctx context.Context, s *Session) error {
	next := s.data.clone()
	next.Token = ""
	next.Email = ""
	return m.rotate(ctx, s, next)
}

// Rotate mueve los datos de la sesion a un id nuevo y borra el anterior.
func (m *Manager) Rotate(ctx context.Context, s *Session) error {
	return m.rotate(ctx, s, s.data.clone())
}

func (m *Manager) AddNotice(ctx context.Context, s *Session, kind, message string) error {
	next := s.data.clone()
	next.Notices = append(next.Notices, Notice{Kind: kind, Message: message})
	return m.save(ctx, s, next)
}

// PopNotices devuelve y vacia los avisos pendientes.
func (m *Manager) PopNotices(ctx context.Context, s *Session) ([]Notice, error) {
	if len(s.data.Notices) == 0 {
		return nil, nil
	}
	notices := append([]Notice(nil), s.data.Notices...)
	next := s.data.clone()
	next.Notices = nil
	if err := m.save(ctx, s, next); err != nil {
		return notices, err
	}
	return notices, nil
}

// Destroy elimina la sesion del store.
func (m *Manager) Destroy(ctx context.Context, s *Session) error {
	s.data = Data{}
	return m.store.Delete(ctx, s.id)
}

func (m *Manager) save(ctx context.Context, s *Session, next Data) error {
	if err := m.store.Put(ctx, s.id, next, m.ttl); err != nil {
		return err
	}
	s.data = next
	s.isNew = false
	s.saved = true
	return nil
}

// rotate borra primero el id viejo: si eso falla la sesion queda intacta.
func (m *Manager) rotate(ctx context.Context, s *Session, next Data) error {
	if err := m.store.Delete(ctx, s.id); err != nil {
		return fmt.Errorf("delete old session: %w", err)
	}
	newID := uuid.NewString()
	if err := m.store.Put(ctx, newID, next, m.ttl); err != nil {
		return err
	}
	s.id = newID
	s.data = next
	s.isNew = false
	s.saved = true
	return nil
}
