package checkout

import (
	"sync"

	"github.com/google/uuid"

	"github.com/wirote65/storefront-backend/internal/cart"
)

// SessionStore keeps checkout sessions in process memory. Sessions are
// ephemeral UI state; losing them on restart only sends the customer back
// to the cart. All reads hand out copies; mutations go through Update so
// concurrent requests on the same session id never touch a session
// unsynchronized.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (st *SessionStore) Create(owner cart.Owner) Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess := &Session{
		ID:    uuid.NewString(),
		Owner: owner,
		State: StateCartReview,
	}
	st.sessions[sess.ID] = sess
	return *sess
}

func (st *SessionStore) Get(id string) (Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return *sess, nil
}

// Update applies fn to the stored session under the store lock and returns
// the resulting copy. Mutations on one session are serialized against each
// other; fn must not call back into the store.
func (st *SessionStore) Update(id string, fn func(*Session) error) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if err := fn(sess); err != nil {
		return Session{}, err
	}
	return *sess, nil
}
