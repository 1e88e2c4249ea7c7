package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sitcouncil/councilreports/internal/auth"
	"github.com/sitcouncil/councilreports/internal/models"
	"github.com/sitcouncil/councilreports/internal/storage"
	"github.com/sitcouncil/councilreports/internal/storage/sqlite"
)

// seedFile is the YAML layout accepted by the seed command.
type seedFile struct {
	Users    []seedUser    `yaml:"users"`
	Meetings []seedMeeting `yaml:"meetings"`
}

type seedUser struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	Email        string    `yaml:"email"`
	Password     string    `yaml:"password"`
	Role         string    `yaml:"role"`
	StudentID    string    `yaml:"student_id"`
	Department   string    `yaml:"department"`
	JoinDate     time.Time `yaml:"join_date"`
	Attended     int       `yaml:"meetings_attended"`
	Completed    int       `yaml:"tasks_completed"`
	Rating       float64   `yaml:"rating"`
	Streak       int       `yaml:"streak"`
	Points       int       `yaml:"points"`
	Achievements []string  `yaml:"achievements"`
}

type seedMeeting struct {
	ID          string           `yaml:"id"`
	Title       string           `yaml:"title"`
	Type        string           `yaml:"type"`
	Date        time.Time        `yaml:"date"`
	StartTime   string           `yaml:"start_time"`
	EndTime     string           `yaml:"end_time"`
	Location    string           `yaml:"location"`
	Chairperson string           `yaml:"chairperson"`
	MinutesBy   string           `yaml:"minutes_taker"`
	Objective   string           `yaml:"objective"`
	Status      string           `yaml:"status"`
	CreatedBy   string           `yaml:"created_by"`
	Agenda      []seedAgendaItem `yaml:"agenda"`
	Attendees   []seedAttendee   `yaml:"attendees"`
	Summary     string           `yaml:"summary"`
	Decisions   []string         `yaml:"decisions"`
	ActionItems []seedActionItem `yaml:"action_items"`
	Next        *seedNextMeeting `yaml:"next_meeting"`
}

type seedAgendaItem struct {
	Title       string `yaml:"title"`
	Presenter   string `yaml:"presenter"`
	Duration    int    `yaml:"duration"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	Order       int    `yaml:"order"`
}

type seedAttendee struct {
	User   string     `yaml:"user"`
	Status string     `yaml:"status"`
	Arrive *time.Time `yaml:"arrival_time"`
	Notes  string     `yaml:"notes"`
}

type seedActionItem struct {
	Task      string     `yaml:"task"`
	Assignee  string     `yaml:"assignee"`
	Deadline  *time.Time `yaml:"deadline"`
	Priority  string     `yaml:"priority"`
	Status    string     `yaml:"status"`
	Completed *time.Time `yaml:"completed_at"`
}

type seedNextMeeting struct {
	Date     *time.Time `yaml:"date"`
	Time     string     `yaml:"time"`
	Location string     `yaml:"location"`
	Agenda   string     `yaml:"agenda"`
}

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file.yaml]",
		Short: "Load users and meetings from a YAML file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read seed file: %w", err)
			}
			var file seedFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("failed to parse seed file: %w", err)
			}

			store, err := sqlite.New(opts.dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			users, meetings, err := seed(cmd.Context(), store, auth.NewPasswordAuthenticator(store), file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users and %d meetings into %s\n", users, meetings, opts.dbPath)
			return nil
		},
	}
}

// seed saves the file's records. Users with a password are registered
// through the authenticator; the rest are stored without a login.
func seed(ctx context.Context, store storage.Store, authenticator auth.Authenticator, file seedFile) (int, int, error) {
	for _, su := range file.Users {
		user := su.toModel()
		var err error
		if su.Password != "" {
			err = authenticator.Register(ctx, &user, su.Password)
		} else {
			err = store.CreateUser(ctx, &user)
		}
		if err != nil {
			return 0, 0, fmt.Errorf("user %s: %w", su.Email, err)
		}
		slog.Debug("Seeded user", "user_id", user.ID, "role", user.Role)
	}

	for _, sm := range file.Meetings {
		meeting := sm.toModel()
		if err := store.CreateMeeting(ctx, &meeting); err != nil {
			return 0, 0, fmt.Errorf("meeting %q: %w", sm.Title, err)
		}
		slog.Debug("Seeded meeting", "meeting_id", meeting.ID, "date", meeting.Date)
	}
	return len(file.Users), len(file.Meetings), nil
}

func (su seedUser) toModel() models.User {
	return models.User{
		ID:         su.ID,
		Name:       su.Name,
		Email:      su.Email,
		Role:       models.Role(su.Role),
		StudentID:  su.StudentID,
		Department: su.Department,
		JoinDate:   su.JoinDate.UTC(),
		Performance: models.Performance{
			MeetingsAttended: su.Attended,
			TasksCompleted:   su.Completed,
			Rating:           su.Rating,
			Streak:           su.Streak,
			Points:           su.Points,
			Achievements:     su.Achievements,
		},
	}
}

func (sm seedMeeting) toModel() models.Meeting {
	m := models.Meeting{
		ID:             sm.ID,
		Title:          sm.Title,
		Type:           models.MeetingType(sm.Type),
		Date:           sm.Date.UTC(),
		StartTime:      sm.StartTime,
		EndTime:        sm.EndTime,
		Location:       sm.Location,
		ChairpersonID:  sm.Chairperson,
		MinutesTakerID: sm.MinutesBy,
		Objective:      sm.Objective,
		Status:         models.MeetingStatus(sm.Status),
		CreatedBy:      sm.CreatedBy,
		Minutes: models.Minutes{
			Summary:   sm.Summary,
			Decisions: sm.Decisions,
		},
	}
	for _, a := range sm.Agenda {
		m.Agenda = append(m.Agenda, models.AgendaItem{
			Title:           a.Title,
			Presenter:       a.Presenter,
			DurationMinutes: a.Duration,
			Description:     a.Description,
			Status:          models.AgendaStatus(a.Status),
			Order:           a.Order,
		})
	}
	for _, a := range sm.Attendees {
		status := models.AttendanceStatus(a.Status)
		if status == "" {
			status = models.AttendancePresent
		}
		m.Attendees = append(m.Attendees, models.Attendee{UserID: a.User, Status: status, ArrivalTime: a.Arrive, Notes: a.Notes})
	}
	for _, item := range sm.ActionItems {
		status := models.TaskStatus(item.Status)
		if status == "" {
			status = models.TaskPending
		}
		m.Minutes.ActionItems = append(m.Minutes.ActionItems, models.ActionItem{
			Task:        item.Task,
			AssigneeID:  item.Assignee,
			Deadline:    item.Deadline,
			Priority:    models.Priority(item.Priority),
			Status:      status,
			CompletedAt: item.Completed,
		})
	}
	if sm.Next != nil {
		m.Minutes.NextMeeting = &models.NextMeeting{
			Date:     sm.Next.Date,
			Time:     sm.Next.Time,
			Location: sm.Next.Location,
			Agenda:   sm.Next.Agenda,
		}
	}
	return m
}
