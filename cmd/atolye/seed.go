package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atolyedev/atolye/internal/config"
	"github.com/atolyedev/atolye/internal/course"
	"github.com/atolyedev/atolye/internal/team"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo teams and courses",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

var demoTeams = []team.CreateTeamInput{
	{
		Name:         "Atolye Robotics",
		Number:       "7836",
		ContactEmail: "hello@atolyerobotics.example",
		Password:     "atolye-demo",
		Description:  "Demo team maintained by the platform. Publishes starter materials and the introductory courses.",
		Location:     "Istanbul",
		FoundedYear:  2019,
		Website:      "https://atolyerobotics.example",
	},
	{
		Name:         "Bozkir Mekatronik",
		Number:       "9154",
		ContactEmail: "iletisim@bozkirmek.example",
		Password:     "atolye-demo",
		Description:  "High school robotics club from central Anatolia.",
		Location:     "Konya",
		FoundedYear:  2021,
	},
}

var demoCourses = []course.CreateCourseInput{
	{
		Title:       "FRC Temelleri",
		Description: "Robot season walkthrough: kickoff, strategy, build, and competition. Covers the basic mechanics and team roles.",
		Category:    "robotics",
		Duration:    "6 hafta",
		Level:       "Başlangıç",
		Content:     "Week-by-week plan from kickoff analysis to the first regional.",
	},
	{
		Title:       "Gömülü Yazılıma Giriş",
		Description: "Microcontroller programming for robot subsystems: sensors, PID loops, and CAN bus communication.",
		Category:    "software",
		Duration:    "8 hafta",
		Level:       "Orta",
		Content:     "Hands-on labs built around the roboRIO and common FRC sensors.",
	},
	{
		Title:       "CAD ile Mekanik Tasarım",
		Description: "Designing drivetrain and manipulator assemblies in CAD, from sketch to manufacturing drawings.",
		Category:    "mechanical",
		Duration:    "6 hafta",
		Level:       "Orta",
	},
	{
		Title:       "Takım Yönetimi ve Sponsorluk",
		Description: "Running a sustainable team: budgeting, sponsor outreach, and outreach event planning.",
		Category:    "management",
		Duration:    "4 hafta",
		Level:       "Başlangıç",
	},
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	teamStore := team.NewStore(pool)
	courseStore := course.NewStore(pool)

	// Check if seed has already run.
	existing, err := courseStore.List(ctx)
	if err != nil {
		return fmt.Errorf("checking existing courses: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("demo data already exists, skipping seed")
		return nil
	}

	var instructor *team.Team
	for _, input := range demoTeams {
		t, err := teamStore.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("creating team %q: %w", input.Name, err)
		}
		slog.Info("created team", "name", t.Name, "id", t.ID)
		if instructor == nil {
			instructor = t
		}
	}

	for _, input := range demoCourses {
		input.InstructorTeamID = instructor.ID
		c, err := courseStore.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("creating course %q: %w", input.Title, err)
		}
		slog.Info("created course", "title", c.Title, "id", c.ID)
	}

	fmt.Printf("\n=== Demo Data Seeded ===\n")
	fmt.Printf("Teams:    %d registered\n", len(demoTeams))
	fmt.Printf("Courses:  %d published\n", len(demoCourses))
	fmt.Printf("\nTry it:\n")
	fmt.Printf("  curl http://localhost:8080/api/courses\n")
	fmt.Printf("  curl -X POST http://localhost:8080/api/teams/login -d '{\"email\":\"%s\",\"password\":\"atolye-demo\"}'\n", demoTeams[0].ContactEmail)

	return nil
}
