package auth

// User is one allowlisted speaker.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Repository persists the allowlist between restarts.
type Repository interface {
	LoadAll() ([]User, error)
	Upsert(user User) error
	Remove(userID int64) error
}

// Service answers "may this user talk to the agent". An empty
// allowlist admits everyone, which is the demo default.
type Service struct {
	repo    Repository
	allowed map[int64]User
}

func NewWithRepo(repo Repository, initial []int64) (*Service, error) {
	s := &Service{repo: repo, allowed: make(map[int64]User)}
	if repo != nil {
		users, err := repo.LoadAll()
		if err == nil {
			for _, u := range users {
				s.allowed[u.ID] = u
			}
		}
	}
	// merge initial IDs (from env) without usernames
	for _, id := range initial {
		if _, ok := s.allowed[id]; !ok {
			s.allowed[id] = User{ID: id}
		}
	}
	return s, nil
}

func (s *Service) IsAllowed(userID int64) bool {
	if len(s.allowed) == 0 {
		return true
	}
	_, ok := s.allowed[userID]
	return ok
}

func (s *Service) Upsert(user User) error {
	s.allowed[user.ID] = user
	if s.repo != nil {
		return s.repo.Upsert(user)
	}
	return nil
}

func (s *Service) Remove(userID int64) error {
	delete(s.allowed, userID)
	if s.repo != nil {
		return s.repo.Remove(userID)
	}
	return nil
}
