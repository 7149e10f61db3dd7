package auth

// Gate authenticates requests against a Directory.
type Gate struct {
	users  *Directory
	tokens TokenIssuer
}

// NewGate returns a gate over users. A nil issuer means UsernameTokens.
func NewGate(users *Directory, tokens TokenIssuer) *Gate {
	if tokens == nil {
		tokens = UsernameTokens{}
	}
	return &Gate{users: users, tokens: tokens}
}

// Login checks the credentials and returns a bearer token for the user.
// Unknown users and wrong passwords produce the same error.
func (g *Gate) Login(username, password string) (string, error) {
	user, ok := g.users.Lookup(username)
	if !ok {
		return "", ErrInvalidCredentials
	}
	if !CheckPasswordHash(password, user.HashedPassword) {
		return "", ErrInvalidCredentials
	}
	return g.tokens.Issue(user.Username)
}

// Resolve maps a bearer token to its user.
func (g *Gate) Resolve(token string) (User, error) {
	if token == "" {
		return User{}, ErrUnauthenticated
	}
	username, err := g.tokens.Subject(token)
	if err != nil {
		return User{}, ErrUnauthenticated
	}
	user, ok := g.users.Lookup(username)
	if !ok {
		return User{}, ErrUnauthenticated
	}
	return user, nil
}

// RequireActive rejects disabled users.
func RequireActive(user User) (User, error) {
	if user.Disabled {
		return User{}, ErrInactiveUser
	}
	return user, nil
}

// Authenticate is Resolve followed by RequireActive.
func (g *Gate) Authenticate(token string) (User, error) {
	user, err := g.Resolve(token)
	if err != nil {
		return User{}, err
	}
	return RequireActive(user)
}
