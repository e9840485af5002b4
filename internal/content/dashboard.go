package content

type Stat struct {
	Title  string
	Value  string
	Change string
}

type Progress struct {
	Title string
	Done  int
	Total int
}

// Percent is Done/Total rounded down, 0 when Total is 0.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return p.Done * 100 / p.Total
}

type ActivityDay struct {
	Day   string
	Value int
}

type PathStep struct {
	Title     string
	Completed bool
}

type Upcoming struct {
	Title string
	Time  string
}

// Dashboard is everything the dashboard shows besides the user.
type Dashboard struct {
	Stats    []Stat
	Progress []Progress
	Activity []ActivityDay
	Metrics  []string
	Path     []PathStep
	Upcoming []Upcoming
}

// DashboardData returns a fresh copy of the dashboard widgets.
func DashboardData() Dashboard {
	return Dashboard{
		Stats: []Stat{
			{"Study Time", "12.5 hrs", "+2.5 hrs"},
			{"Lessons Completed", "24", "+8"},
			{"Current Streak", "7 days", "+3 days"},
			{"Achievements", "15", "+3"},
		},
		Progress: []Progress{
			{"Current Course Progress", 8, 12},
			{"Weekly Goal Progress", 5, 7},
		},
		Activity: []ActivityDay{
			{"Mon", 40}, {"Tue", 60}, {"Wed", 45}, {"Thu", 70}, {"Fri", 55}, {"Sat", 80}, {"Sun", 65},
		},
		Metrics: []string{"Week", "Month", "Year"},
		Path: []PathStep{
			{"Introduction to AI", true},
			{"Machine Learning Basics", true},
			{"Neural Networks", false},
			{"Deep Learning", false},
		},
		Upcoming: []Upcoming{
			{"Advanced Mathematics", "Today, 2:00 PM"},
			{"Physics Fundamentals", "Tomorrow, 10:00 AM"},
		},
	}
}

type AccountTab struct {
	ID    string
	Label string
}

const DefaultAccountTab = "profile"

var accountTabs = []AccountTab{
	{"profile", "Profile"},
	{"notifications", "Notifications"},
	{"learning", "Learning Preferences"},
	{"settings", "Account Settings"},
}

func AccountTabs() []AccountTab {
	return append([]AccountTab(nil), accountTabs...)
}

// ResolveTab returns id when it names a tab and the default tab otherwise.
func ResolveTab(id string) string {
	for _, t := range accountTabs {
		if t.ID == id {
			return id
		}
	}
	return DefaultAccountTab
}
