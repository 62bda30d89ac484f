package api

import (
	"github.com/abhisek/mathforest/internal/auth"
	"github.com/abhisek/mathforest/internal/badges"
	"github.com/abhisek/mathforest/internal/boss"
	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/persist"
	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/session"
	"github.com/abhisek/mathforest/internal/skills"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type skillRequest struct {
	Skill skills.ID `json:"skill"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type signUpResponse struct {
	Result  auth.SignUpResult `json:"result"`
	Session *auth.Session     `json:"session,omitempty"`
}

type clockJSON struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// problemJSON is a problem as the client sees it; the answer is withheld.
type problemJSON struct {
	Text    string     `json:"text"`
	Choices []string   `json:"choices"`
	Skill   skills.ID  `json:"skill"`
	Level   int        `json:"level"`
	Kind    string     `json:"kind"`
	Clock   *clockJSON `json:"clock,omitempty"`
	Hint    string     `json:"hint,omitempty"`
}

func toProblem(p *problemgen.Problem, withHint bool) *problemJSON {
	if p == nil {
		return nil
	}
	out := &problemJSON{
		Text:    p.Text,
		Choices: p.Choices,
		Skill:   p.Skill,
		Level:   p.Level,
		Kind:    string(p.Kind),
	}
	if p.Clock != nil {
		out.Clock = &clockJSON{Hour: p.Clock.Hour, Minute: p.Clock.Minute}
	}
	if withHint {
		out.Hint = p.Hint
	}
	return out
}

type practiceJSON struct {
	SessionID      string            `json:"session_id"`
	Skill          skills.ID         `json:"skill"`
	SkillName      string            `json:"skill_name"`
	Icon           string            `json:"icon"`
	Level          int               `json:"level"`
	MaxLevel       int               `json:"max_level"`
	XP             int               `json:"xp"`
	XPNeeded       int               `json:"xp_needed"`
	Problem        *problemJSON      `json:"problem"`
	InputMode      session.InputMode `json:"input_mode"`
	Correct        int               `json:"correct"`
	Total          int               `json:"total"`
	Streak         int               `json:"streak"`
	Attempts       int               `json:"attempts"`
	Complete       bool              `json:"complete"`
	Claimed        bool              `json:"claimed"`
	ElapsedMinutes int               `json:"elapsed_minutes"`
	MinAnswers     int               `json:"min_answers"`
	MinMinutes     int               `json:"min_minutes"`
	Stars          int               `json:"stars"`
}

func toPractice(v game.PracticeView) practiceJSON {
	return practiceJSON{
		SessionID:      v.SessionID,
		Skill:          v.Skill,
		SkillName:      v.SkillName,
		Icon:           v.Icon,
		Level:          v.Level,
		MaxLevel:       v.MaxLevel,
		XP:             v.XP,
		XPNeeded:       v.XPNeeded,
		Problem:        toProblem(&v.Problem, v.HintShown),
		InputMode:      v.InputMode,
		Correct:        v.Correct,
		Total:          v.Total,
		Streak:         v.Streak,
		Attempts:       v.Attempts,
		Complete:       v.Complete,
		Claimed:        v.Claimed,
		ElapsedMinutes: v.ElapsedMinutes,
		MinAnswers:     v.MinAnswers,
		MinMinutes:     v.MinMinutes,
		Stars:          v.Stars,
	}
}

type eventJSON struct {
	Kind  progression.EventKind `json:"kind"`
	Skill skills.ID             `json:"skill,omitempty"`
	From  int                   `json:"from,omitempty"`
	To    int                   `json:"to,omitempty"`
	Badge *badges.Badge         `json:"badge,omitempty"`
	Prize int                   `json:"prize,omitempty"`
}

func toEvents(evs []progression.Event) []eventJSON {
	out := make([]eventJSON, 0, len(evs))
	for _, e := range evs {
		out = append(out, eventJSON{Kind: e.Kind, Skill: e.Skill, From: e.From, To: e.To, Badge: e.Badge, Prize: e.Prize})
	}
	return out
}

type answerResponse struct {
	Correct    bool           `json:"correct"`
	XPGained   int            `json:"xp_gained"`
	Bonus      int            `json:"bonus"`
	Star       bool           `json:"star"`
	Hint       string         `json:"hint,omitempty"`
	Answer     string         `json:"answer,omitempty"`
	Completed  bool           `json:"completed"`
	Advanced   bool           `json:"advanced"`
	Events     []eventJSON    `json:"events"`
	Practice   practiceJSON   `json:"practice"`
	SaveStatus persist.Status `json:"save_status"`
}

type bossJSON struct {
	Phase    boss.Phase   `json:"phase"`
	BossHP   int          `json:"boss_hp"`
	PlayerHP int          `json:"player_hp"`
	Problem  *problemJSON `json:"problem,omitempty"`
	// Delays tell the client how long to hold each transition.
	IntroDelayMS   int64 `json:"intro_delay_ms"`
	ResolveDelayMS int64 `json:"resolve_delay_ms"`
}

func toBoss(v game.BossView) bossJSON {
	return bossJSON{
		Phase:          v.Phase,
		BossHP:         v.BossHP,
		PlayerHP:       v.PlayerHP,
		Problem:        toProblem(v.Problem, false),
		IntroDelayMS:   boss.IntroDelay.Milliseconds(),
		ResolveDelayMS: boss.ResolveDelay.Milliseconds(),
	}
}

type strikeJSON struct {
	Hit     bool     `json:"hit"`
	Message string   `json:"message"`
	Answer  string   `json:"answer,omitempty"`
	Won     bool     `json:"won"`
	Lost    bool     `json:"lost"`
	Boss    bossJSON `json:"boss"`
}

type skillJSON struct {
	ID       skills.ID `json:"id"`
	Name     string    `json:"name"`
	Icon     string    `json:"icon"`
	Level    int       `json:"level"`
	MaxLevel int       `json:"max_level"`
	XP       int       `json:"xp"`
	XPNeeded int       `json:"xp_needed"`
	Locked   bool      `json:"locked"`
}

type homeJSON struct {
	Name          string         `json:"name"`
	Rank          string         `json:"rank"`
	RankIcon      string         `json:"rank_icon"`
	TotalLevel    int            `json:"total_level"`
	TotalStars    int            `json:"total_stars"`
	BestStreak    int            `json:"best_streak"`
	Potions       int            `json:"potions"`
	Skills        []skillJSON    `json:"skills"`
	Badges        []badges.Badge `json:"badges"`
	Prizes        int            `json:"prizes"`
	BossAvailable bool           `json:"boss_available"`
	BossDefeated  bool           `json:"boss_defeated"`
	SaveStatus    persist.Status `json:"save_status"`
}

func toHome(v game.HomeView) homeJSON {
	h := homeJSON{
		Name:          v.Name,
		Rank:          v.Rank.Title,
		RankIcon:      v.Rank.Icon,
		TotalLevel:    v.TotalLevel,
		TotalStars:    v.TotalStars,
		BestStreak:    v.BestStreak,
		Potions:       v.Potions,
		Badges:        v.Badges,
		Prizes:        v.Prizes,
		BossAvailable: v.BossAvailable,
		BossDefeated:  v.BossDefeated,
		SaveStatus:    v.SaveStatus,
	}
	for _, c := range v.Skills {
		h.Skills = append(h.Skills, skillJSON(c))
	}
	return h
}

type profileJSON struct {
	ID          string            `json:"id"`
	Email       string            `json:"email"`
	Name        string            `json:"name"`
	SkillLevels map[skills.ID]int `json:"skill_levels"`
	SkillXP     map[skills.ID]int `json:"skill_xp"`
	TotalStars  int               `json:"total_stars"`
	BestStreak  int               `json:"best_streak"`
	Potions     int               `json:"potions"`
	Badges      []badges.Badge    `json:"badges"`
	BossDefeats map[string]bool   `json:"boss_defeats"`
}

func toProfile(id auth.Identity, p progression.Profile) profileJSON {
	return profileJSON{
		ID:          id.ID,
		Email:       id.Email,
		Name:        p.Name,
		SkillLevels: p.SkillLevels,
		SkillXP:     p.SkillXP,
		TotalStars:  p.TotalStars,
		BestStreak:  p.BestStreak,
		Potions:     p.Potions,
		Badges:      p.Badges,
		BossDefeats: p.BossDefeats,
	}
}

type summaryJSON struct {
	Skill          skills.ID `json:"skill"`
	SkillName      string    `json:"skill_name"`
	DurationSec    int64     `json:"duration_sec"`
	TotalQuestions int       `json:"total_questions"`
	TotalCorrect   int       `json:"total_correct"`
	Accuracy       float64   `json:"accuracy"`
	LevelBefore    int       `json:"level_before"`
	LevelAfter     int       `json:"level_after"`
	LevelUps       int       `json:"level_ups"`
	Demotions      int       `json:"demotions"`
	Claimed        bool      `json:"claimed"`
}

func toSummary(s *session.Summary) summaryJSON {
	return summaryJSON{
		Skill:          s.Skill,
		SkillName:      s.SkillName,
		DurationSec:    int64(s.Duration.Seconds()),
		TotalQuestions: s.TotalQuestions,
		TotalCorrect:   s.TotalCorrect,
		Accuracy:       s.Accuracy,
		LevelBefore:    s.LevelBefore,
		LevelAfter:     s.LevelAfter,
		LevelUps:       s.LevelUps,
		Demotions:      s.Demotions,
		Claimed:        s.Claimed,
	}
}
