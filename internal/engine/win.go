package engine

import (
	"github.com/brineforge/arena-server/internal/transport"
	"github.com/brineforge/arena-server/internal/world"
)

// checkWinCondition implements spec §4.5 step 3, run once per tick outside
// io-mode: a tie if nobody is left alive, a team win if one team's roster
// equals the whole surviving set, or a solo win if exactly one banner
// survives. Reports whether the match ended (and was reset) this tick.
func checkWinCondition(h *Hub) bool {
	if h.World.Mode.IOMode || h.World.Mode.Mode == world.ModeWaiting {
		return false
	}
	living := livingBanners(h.World)
	switch {
	case len(living) == 0:
		h.Clients.Broadcast(transport.Tie{})
	case teamSweep(h.World, living) != world.TeamIDInvalid:
		team, _ := h.World.Teams.Get(teamSweep(h.World, living))
		h.Clients.Broadcast(transport.End{Banner: team.Banner})
	case len(living) == 1:
		h.Clients.Broadcast(transport.End{Banner: living[0]})
	default:
		return false
	}
	h.ResetMatch()
	return true
}

func livingBanners(w *world.World) []world.BannerID {
	var out []world.BannerID
	for _, b := range w.Banners.All() {
		if b.ID != world.SystemBanner && b.Alive {
			out = append(out, b.ID)
		}
	}
	return out
}

func teamSweep(w *world.World, living []world.BannerID) world.TeamID {
	for _, team := range w.Teams.All() {
		if len(team.Members) == 0 || len(team.Members) != len(living) {
			continue
		}
		memberSet := make(map[world.BannerID]bool, len(team.Members))
		for _, m := range team.Members {
			memberSet[m] = true
		}
		all := true
		for _, l := range living {
			if !memberSet[l] {
				all = false
				break
			}
		}
		if all {
			return team.ID
		}
	}
	return world.TeamIDInvalid
}
