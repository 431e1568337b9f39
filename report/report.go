package report

import (
	"errors"
	"sort"
	"time"

	"github.com/cppla/prepmeter/gamification"
	"github.com/cppla/prepmeter/models"
)

// ErrInvalidRange is returned for unparsable or inverted ranges.
var ErrInvalidRange = errors.New("invalid report range")

// Range is an inclusive span of calendar days.
type Range struct {
	From time.Time
	To   time.Time
}

// ParseRange parses "YYYY-MM-DD" bounds in loc.
func ParseRange(from, to string, loc *time.Location) (Range, error) {
	if loc == nil {
		loc = time.UTC
	}
	f, err := time.ParseInLocation(gamification.DateLayout, from, loc)
	if err != nil {
		return Range{}, ErrInvalidRange
	}
	t, err := time.ParseInLocation(gamification.DateLayout, to, loc)
	if err != nil || t.Before(f) {
		return Range{}, ErrInvalidRange
	}
	return Range{From: f, To: t}, nil
}

// Contains reports whether a "YYYY-MM-DD" date lies in the range.
func (r Range) Contains(date string) bool {
	return date >= r.From.Format(gamification.DateLayout) && date <= r.To.Format(gamification.DateLayout)
}

// Overlaps reports whether [start, end] intersects the range.
func (r Range) Overlaps(start, end time.Time) bool {
	return !start.After(r.To.AddDate(0, 0, 1)) && !end.Before(r.From)
}

type SubjectHours struct {
	Subject models.SubjectName `json:"subject"`
	Hours   float64            `json:"hours"`
}

type SubjectCount struct {
	Subject models.SubjectName `json:"subject"`
	Count   int                `json:"count"`
}

type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type TestPoint struct {
	Date     string  `json:"date"`
	Name     string  `json:"name"`
	Total    float64 `json:"total"`
	Negative float64 `json:"negative"`
	Rank     *int    `json:"rank,omitempty"`
}

type TestAnalysis struct {
	HighestScore    float64     `json:"highestScore"`
	AverageScore    float64     `json:"averageScore"`
	AverageNegative float64     `json:"averageNegative"`
	TotalTests      int         `json:"totalTests"`
	Performance     []TestPoint `json:"performance"`
}

type Wellness struct {
	AvgMood  *float64 `json:"avgMood"`
	AvgSleep *float64 `json:"avgSleep"`
}

type TeacherSummary struct {
	Name         string  `json:"name"`
	Hours        float64 `json:"hours"`
	LectureCount int     `json:"lectureCount"`
	AvgRating    float64 `json:"avgRating"`
}

type CompletedTopic struct {
	Subject models.SubjectName `json:"subject"`
	Name    string             `json:"name"`
}

type Day struct {
	Date            string                      `json:"date"`
	StudyHours      float64                     `json:"studyHours"`
	CoachingHours   float64                     `json:"coachingHours"`
	Efficiency      *float64                    `json:"efficiency"`
	CompletedTopics []CompletedTopic            `json:"completedTopics"`
	CompletedTasks  []string                    `json:"completedTasks"`
	Wellness        *models.WellnessLog         `json:"wellness"`
	DailyMood       *int                        `json:"dailyMood"`
	QuestionsSolved []models.QuestionsSolvedLog `json:"questionsSolved"`
}

// Report aggregates a user's activity over a date range.
type Report struct {
	From                 string              `json:"from"`
	To                   string              `json:"to"`
	TotalStudyHours      float64             `json:"totalStudyHours"`
	TotalCoachingHours   float64             `json:"totalCoachingHours"`
	AvgEfficiency        *float64            `json:"avgEfficiency"`
	StudyHoursBySubject  []SubjectHours      `json:"studyHoursBySubject"`
	CompletedTopicsCount int                 `json:"completedTopicsCount"`
	CompletedTasksCount  int                 `json:"completedTasksCount"`
	TotalQuestionsSolved int                 `json:"totalQuestionsSolved"`
	QuestionsBySubject   []SubjectCount      `json:"questionsBySubject"`
	QuestionsByType      []NamedCount        `json:"questionsByType"`
	QuestionsBySource    []NamedCount        `json:"questionsBySource"`
	TestsTaken           []models.TestResult `json:"testsTaken"`
	TestAnalysis         TestAnalysis        `json:"testAnalysis"`
	Wellness             Wellness            `json:"wellnessSummary"`
	Challenges           []models.Challenge  `json:"challenges"`
	Teachers             []TeacherSummary    `json:"teachers"`
	DoubtsBySubject      []SubjectCount      `json:"doubtsBySubject"`
	DoubtResolution      []NamedCount        `json:"doubtResolution"`
	Days                 []Day               `json:"dailyBreakdown"`
}

// Build computes the report of state over r.
func Build(state *models.UserState, r Range) Report {
	rep := Report{
		From:              r.From.Format(gamification.DateLayout),
		To:                r.To.Format(gamification.DateLayout),
		QuestionsByType:   []NamedCount{},
		QuestionsBySource: []NamedCount{},
		TestsTaken:        []models.TestResult{},
		Challenges:        []models.Challenge{},
		Teachers:          []TeacherSummary{},
		Days:              []Day{},
		TestAnalysis:      TestAnalysis{Performance: []TestPoint{}},
	}

	subjectHours := map[models.SubjectName]float64{}
	subjectQuestions := map[models.SubjectName]int{}
	byType := newCounter()
	bySource := newCounter()
	days := map[string]*Day{}
	day := func(date string) *Day {
		if d, ok := days[date]; ok {
			return d
		}
		d := &Day{Date: date, CompletedTopics: []CompletedTopic{}, CompletedTasks: []string{}, QuestionsSolved: []models.QuestionsSolvedLog{}}
		days[date] = d
		return d
	}

	effSum, effN := 0.0, 0
	for i := range state.DailyPlans {
		plan := &state.DailyPlans[i]
		if !r.Contains(plan.Date) {
			continue
		}
		d := day(plan.Date)
		d.StudyHours = StudyHours(plan)
		d.Efficiency = Efficiency(plan)
		d.DailyMood = plan.DailyMood
		rep.TotalStudyHours += d.StudyHours
		if d.Efficiency != nil {
			effSum += *d.Efficiency
			effN++
		}

		for _, slot := range plan.Schedule {
			if slot.Status != models.ItemCompleted {
				continue
			}
			if subject, ok := SlotSubject(plan, slot); ok {
				subjectHours[subject] += SlotHours(slot)
			}
		}
		for _, pt := range plan.SubjectPlans.All() {
			if pt.Status == models.ItemCompleted {
				d.CompletedTopics = append(d.CompletedTopics, CompletedTopic{Subject: pt.Subject, Name: pt.ChapterName})
			}
		}
		for _, task := range plan.Tasks {
			if task.Status == models.ItemCompleted {
				d.CompletedTasks = append(d.CompletedTasks, task.Text)
			}
		}
		rep.CompletedTopicsCount += len(d.CompletedTopics)
		rep.CompletedTasksCount += len(d.CompletedTasks)

		for _, q := range plan.QuestionsSolved {
			d.QuestionsSolved = append(d.QuestionsSolved, q)
			rep.TotalQuestionsSolved += q.Count
			subjectQuestions[q.Subject] += q.Count
			byType.add(q.Type, q.Count)
			source := q.Source
			if source == "" {
				source = "Unspecified"
			}
			bySource.add(source, q.Count)
		}
	}
	if effN > 0 {
		avg := effSum / float64(effN)
		rep.AvgEfficiency = &avg
	}

	teachers := map[string]*teacherAcc{}
	var teacherOrder []string
	for i := range state.CoachingLogs {
		log := &state.CoachingLogs[i]
		if !r.Contains(log.Date) {
			continue
		}
		hours := CoachingHours(log)
		day(log.Date).CoachingHours = hours
		rep.TotalCoachingHours += hours
		for _, a := range log.Activities {
			if a.Type != models.CoachingLectureActivity || a.Teacher == "" {
				continue
			}
			acc, ok := teachers[a.Teacher]
			if !ok {
				acc = &teacherAcc{}
				teachers[a.Teacher] = acc
				teacherOrder = append(teacherOrder, a.Teacher)
			}
			acc.hours += Duration(a.StartTime, a.EndTime)
			acc.lectures++
			if a.Rating > 0 {
				acc.ratingSum += a.Rating
				acc.rated++
			}
		}
	}
	for _, name := range teacherOrder {
		acc := teachers[name]
		ts := TeacherSummary{Name: name, Hours: acc.hours, LectureCount: acc.lectures}
		if acc.rated > 0 {
			ts.AvgRating = float64(acc.ratingSum) / float64(acc.rated)
		}
		rep.Teachers = append(rep.Teachers, ts)
	}

	moodSum, sleepSum, wellN := 0.0, 0.0, 0
	for i := range state.WellnessLogs {
		w := state.WellnessLogs[i]
		if !r.Contains(w.Date) {
			continue
		}
		day(w.Date).Wellness = &w
		moodSum += float64(w.Mood)
		sleepSum += w.SleepHours
		wellN++
	}
	if wellN > 0 {
		mood, sleep := moodSum/float64(wellN), sleepSum/float64(wellN)
		rep.Wellness = Wellness{AvgMood: &mood, AvgSleep: &sleep}
	}

	for _, t := range state.Tests {
		if r.Contains(t.Date) {
			rep.TestsTaken = append(rep.TestsTaken, t)
		}
	}
	rep.TestAnalysis = analyseTests(rep.TestsTaken)

	for _, c := range state.Challenges {
		if r.Overlaps(c.StartDate, c.EndDate) {
			rep.Challenges = append(rep.Challenges, c)
		}
	}

	doubtSubjects := map[models.SubjectName]int{}
	cleared, confusing := 0, 0
	for _, d := range state.Doubts {
		if !r.Contains(d.Date) {
			continue
		}
		doubtSubjects[d.Subject]++
		if d.Status == models.DoubtCleared {
			cleared++
		} else {
			confusing++
		}
	}
	rep.DoubtResolution = []NamedCount{
		{Name: string(models.DoubtCleared), Count: cleared},
		{Name: string(models.DoubtConfusing), Count: confusing},
	}

	for _, subject := range models.Subjects {
		rep.StudyHoursBySubject = append(rep.StudyHoursBySubject, SubjectHours{Subject: subject, Hours: subjectHours[subject]})
		rep.QuestionsBySubject = append(rep.QuestionsBySubject, SubjectCount{Subject: subject, Count: subjectQuestions[subject]})
		rep.DoubtsBySubject = append(rep.DoubtsBySubject, SubjectCount{Subject: subject, Count: doubtSubjects[subject]})
	}
	rep.QuestionsByType = byType.list()
	rep.QuestionsBySource = bySource.list()

	for _, d := range days {
		rep.Days = append(rep.Days, *d)
	}
	sort.Slice(rep.Days, func(i, j int) bool { return rep.Days[i].Date < rep.Days[j].Date })
	return rep
}

func analyseTests(tests []models.TestResult) TestAnalysis {
	a := TestAnalysis{TotalTests: len(tests), Performance: []TestPoint{}}
	if len(tests) == 0 {
		return a
	}
	sorted := append([]models.TestResult(nil), tests...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	scoreSum, negSum := 0.0, 0.0
	for i, t := range sorted {
		score, neg := t.Score(), t.NegativeMarks.Sum()
		if i == 0 || score > a.HighestScore {
			a.HighestScore = score
		}
		scoreSum += score
		negSum += neg
		a.Performance = append(a.Performance, TestPoint{Date: t.Date, Name: t.Name, Total: score, Negative: neg, Rank: t.ClassRank})
	}
	a.AverageScore = scoreSum / float64(len(sorted))
	a.AverageNegative = negSum / float64(len(sorted))
	return a
}

type teacherAcc struct {
	hours     float64
	lectures  int
	ratingSum int
	rated     int
}

// counter tallies named counts, remembering first-seen order.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter { return &counter{counts: map[string]int{}} }

func (c *counter) add(name string, n int) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name] += n
}

func (c *counter) list() []NamedCount {
	out := make([]NamedCount, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, NamedCount{Name: name, Count: c.counts[name]})
	}
	return out
}
