// Command seed populates the database with demo users and financial
// profiles. The profiles span the age, income, and risk spectrum so
// that segmentation and recommendations have realistic peers to work
// with out of the box.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"finsight/internal/config"
	"finsight/internal/database"
	apperrors "finsight/internal/errors"
	"finsight/internal/logger"
	"finsight/internal/models"
	"finsight/internal/services"
)

const seedPassword = "demo-password-123"

type seedProfile struct {
	name       string
	age        int
	income     int64 // dollars
	employment models.EmploymentStatus
	risk       models.RiskTolerance
	experience models.ExperienceLevel
	savings    int64 // dollars per month
	debt       int64 // dollars
	goals      []string
}

var seedProfiles = []seedProfile{
	{"Alex Thompson", 28, 75000, models.EmploymentEmployed, models.RiskToleranceAggressive, models.ExperienceIntermediate, 1200, 25000, []string{"Emergency Fund", "Retirement Planning", "Investment Growth"}},
	{"Sarah Chen", 26, 68000, models.EmploymentEmployed, models.RiskToleranceModerate, models.ExperienceBeginner, 1000, 35000, []string{"Emergency Fund", "Debt Reduction", "Home Purchase"}},
	{"Marcus Johnson", 32, 95000, models.EmploymentEmployed, models.RiskToleranceAggressive, models.ExperienceAdvanced, 2000, 15000, []string{"Investment Growth", "Retirement Planning", "Home Purchase"}},
	{"Emily Rodriguez", 29, 82000, models.EmploymentEmployed, models.RiskToleranceModerate, models.ExperienceIntermediate, 1500, 20000, []string{"Emergency Fund", "Retirement Planning", "Education"}},
	{"David Kim", 42, 120000, models.EmploymentEmployed, models.RiskToleranceModerate, models.ExperienceAdvanced, 3000, 180000, []string{"Retirement Planning", "Education", "Investment Growth"}},
	{"Jennifer Walsh", 38, 105000, models.EmploymentEmployed, models.RiskToleranceConservative, models.ExperienceIntermediate, 2200, 45000, []string{"Emergency Fund", "Retirement Planning", "Education"}},
	{"Robert Martinez", 45, 140000, models.EmploymentSelfEmployed, models.RiskToleranceAggressive, models.ExperienceAdvanced, 4000, 60000, []string{"Retirement Planning", "Investment Growth", "Emergency Fund"}},
	{"Lisa Anderson", 40, 98000, models.EmploymentEmployed, models.RiskToleranceModerate, models.ExperienceIntermediate, 2500, 25000, []string{"Retirement Planning", "Home Purchase", "Education"}},
	{"Michael Brown", 55, 150000, models.EmploymentEmployed, models.RiskToleranceConservative, models.ExperienceAdvanced, 5000, 80000, []string{"Retirement Planning", "Emergency Fund"}},
	{"Patricia Wilson", 58, 110000, models.EmploymentEmployed, models.RiskToleranceConservative, models.ExperienceIntermediate, 4500, 30000, []string{"Retirement Planning", "Emergency Fund"}},
	{"James Taylor", 52, 135000, models.EmploymentSelfEmployed, models.RiskToleranceModerate, models.ExperienceAdvanced, 3800, 120000, []string{"Retirement Planning", "Investment Growth", "Emergency Fund"}},
	{"Ashley Davis", 24, 45000, models.EmploymentEmployed, models.RiskToleranceModerate, models.ExperienceBeginner, 600, 40000, []string{"Emergency Fund", "Debt Reduction"}},
	{"Kevin Lee", 25, 52000, models.EmploymentEmployed, models.RiskToleranceAggressive, models.ExperienceBeginner, 800, 35000, []string{"Emergency Fund", "Investment Growth", "Debt Reduction"}},
	{"Samantha Garcia", 27, 58000, models.EmploymentEmployed, models.RiskToleranceConservative, models.ExperienceBeginner, 700, 28000, []string{"Emergency Fund", "Home Purchase", "Debt Reduction"}},
	{"Christopher White", 35, 180000, models.EmploymentEmployed, models.RiskToleranceAggressive, models.ExperienceAdvanced, 6000, 250000, []string{"Investment Growth", "Retirement Planning", "Education"}},
	{"Rachel Thompson", 33, 165000, models.EmploymentSelfEmployed, models.RiskToleranceModerate, models.ExperienceAdvanced, 5500, 90000, []string{"Retirement Planning", "Investment Growth", "Emergency Fund"}},
	{"Daniel Miller", 23, 35000, models.EmploymentEmployed, models.RiskToleranceConservative, models.ExperienceBeginner, 300, 45000, []string{"Emergency Fund", "Debt Reduction"}},
	{"Nicole Jackson", 26, 42000, models.EmploymentEmployed, models.RiskToleranceModerate, models.ExperienceBeginner, 450, 32000, []string{"Emergency Fund", "Debt Reduction", "Home Purchase"}},
	{"William Johnson", 67, 65000, models.EmploymentRetired, models.RiskToleranceConservative, models.ExperienceIntermediate, 1000, 0, []string{"Emergency Fund"}},
	{"Margaret Davis", 63, 85000, models.EmploymentRetired, models.RiskToleranceConservative, models.ExperienceAdvanced, 2000, 15000, []string{"Emergency Fund"}},
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Seed error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	if _, err := config.Load(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	userService := services.NewUserService(db)
	profileService := services.NewProfileService(db)

	created := 0
	for _, sp := range seedProfiles {
		first, last := splitName(sp.name)
		email := emailFor(sp.name)

		user, err := userService.CreateUser(email, seedPassword, first, last)
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			// The seed already ran for this user.
			log.Debugw("User already seeded", "email", email)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", email, err)
		}

		if _, err := profileService.CreateProfile(user.ID, services.ProfileInput{
			Name:                 sp.name,
			Age:                  sp.age,
			AnnualIncome:         sp.income * 100,
			EmploymentStatus:     sp.employment,
			RiskTolerance:        sp.risk,
			InvestmentExperience: sp.experience,
			MonthlySavings:       sp.savings * 100,
			DebtAmount:           sp.debt * 100,
			FinancialGoals:       sp.goals,
		}); err != nil {
			return fmt.Errorf("failed to create profile for %s: %w", email, err)
		}
		created++
	}

	// The first account doubles as the interactive demo login; give it
	// concrete savings goals so the planning endpoints have data.
	if created > 0 {
		demo, err := userService.GetUserByEmail(emailFor(seedProfiles[0].name))
		if err != nil {
			return err
		}
		demoGoals := []services.GoalInput{
			{Name: "Emergency fund", TargetAmount: 2_000_000, TimelineYears: 2, Priority: models.GoalPriorityHigh},
			{Name: "House down payment", TargetAmount: 8_000_000, TimelineYears: 6, Priority: models.GoalPriorityMedium},
			{Name: "Sabbatical travel", TargetAmount: 1_500_000, TimelineYears: 4, Priority: models.GoalPriorityLow},
		}
		for _, g := range demoGoals {
			if _, err := profileService.AddGoal(demo.ID, g); err != nil {
				return fmt.Errorf("failed to create goal %q: %w", g.Name, err)
			}
		}
	}

	log.Infof("Seeded %d users with financial profiles (password: %s)", created, seedPassword)
	return nil
}

func splitName(full string) (string, string) {
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func emailFor(full string) string {
	return strings.ToLower(strings.ReplaceAll(full, " ", ".")) + "@example.com"
}
