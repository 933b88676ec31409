package world

// Team groups banners under a shared password-gated identity, generalizing
// the teacher's Team (which gated ship joining the same way).
type Team struct {
	ID       TeamID
	Name     string
	Password string

	// Banner is the banner displayed as the team's name (spec §3: a team's
	// id is shown as a banner); allocated by whoever creates the team.
	Banner BannerID

	Members []BannerID
}

type TeamTable struct {
	alloc TeamIDAllocator
	teams map[TeamID]*Team
}

func NewTeamTable() *TeamTable {
	return &TeamTable{teams: make(map[TeamID]*Team)}
}

func (t *TeamTable) Create(name, password string) *Team {
	id := t.alloc.Next()
	team := &Team{ID: id, Name: name, Password: password}
	t.teams[id] = team
	return team
}

func (t *TeamTable) Get(id TeamID) (*Team, bool) {
	team, ok := t.teams[id]
	return team, ok
}

func (t *TeamTable) ByName(name string) (*Team, bool) {
	for _, team := range t.teams {
		if team.Name == name {
			return team, true
		}
	}
	return nil, false
}

// ByPassword finds the team gated by password; used by the Connect
// handshake, where presenting a team's password joins that team. Teams
// with no password are not joinable this way.
func (t *TeamTable) ByPassword(password string) (*Team, bool) {
	if password == "" {
		return nil, false
	}
	for _, team := range t.teams {
		if team.Password == password {
			return team, true
		}
	}
	return nil, false
}

// Join admits a banner to a team if password matches, or the team has no
// password set.
func (t *Team) Join(banner BannerID, password string) bool {
	if t.Password != "" && t.Password != password {
		return false
	}
	for _, m := range t.Members {
		if m == banner {
			return true
		}
	}
	t.Members = append(t.Members, banner)
	return true
}

func (t *Team) Leave(banner BannerID) {
	for i, m := range t.Members {
		if m == banner {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return
		}
	}
}

func (t *TeamTable) All() []*Team {
	out := make([]*Team, 0, len(t.teams))
	for _, team := range t.teams {
		out = append(out, team)
	}
	return out
}

func (t *TeamTable) Remove(id TeamID) {
	delete(t.teams, id)
}
