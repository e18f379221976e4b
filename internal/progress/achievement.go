package progress

// Achievement identifies a write-once milestone.
type Achievement string

const (
	AchievementFirstCard      Achievement = "first_card"
	AchievementStreak3        Achievement = "streak_3"
	AchievementStreak7        Achievement = "streak_7"
	AchievementStreak30       Achievement = "streak_30"
	AchievementMastered50     Achievement = "mastered_50"
	AchievementMastered100    Achievement = "mastered_100"
	AchievementMastered500    Achievement = "mastered_500"
	AchievementPerfectSession Achievement = "perfect_session"
	AchievementNightOwl       Achievement = "night_owl"
)

// AllAchievements returns all achievements in display order.
func AllAchievements() []Achievement {
	return []Achievement{
		AchievementFirstCard,
		AchievementStreak3, AchievementStreak7, AchievementStreak30,
		AchievementMastered50, AchievementMastered100, AchievementMastered500,
		AchievementPerfectSession, AchievementNightOwl,
	}
}

// Milestones for streak and mastered-card achievements.
var (
	streakMilestones = []struct {
		days int
		a    Achievement
	}{
		{3, AchievementStreak3},
		{7, AchievementStreak7},
		{30, AchievementStreak30},
	}
	masteredMilestones = []struct {
		count int
		a     Achievement
	}{
		{50, AchievementMastered50},
		{100, AchievementMastered100},
		{500, AchievementMastered500},
	}
)

// PerfectSessionMinCards is the least number of graded cards a session
// needs to count as perfect.
const PerfectSessionMinCards = 10

// Night owl window, in local hours: [NightStartHour, 24) and [0, NightEndHour).
const (
	NightStartHour = 23
	NightEndHour   = 7
)

// DisplayName returns a human-readable label for the achievement.
func (a Achievement) DisplayName() string {
	switch a {
	case AchievementFirstCard:
		return "First Card"
	case AchievementStreak3:
		return "3-Day Streak"
	case AchievementStreak7:
		return "Week Streak"
	case AchievementStreak30:
		return "Month Streak"
	case AchievementMastered50:
		return "50 Words Mastered"
	case AchievementMastered100:
		return "100 Words Mastered"
	case AchievementMastered500:
		return "500 Words Mastered"
	case AchievementPerfectSession:
		return "Perfect Session"
	case AchievementNightOwl:
		return "Night Owl"
	default:
		return string(a)
	}
}

// Icon returns the display icon for the achievement.
func (a Achievement) Icon() string {
	switch a {
	case AchievementFirstCard:
		return "🌱"
	case AchievementStreak3, AchievementStreak7, AchievementStreak30:
		return "🔥"
	case AchievementMastered50, AchievementMastered100, AchievementMastered500:
		return "💎"
	case AchievementPerfectSession:
		return "🏆"
	case AchievementNightOwl:
		return "🦉"
	default:
		return "✦"
	}
}
