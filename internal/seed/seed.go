package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/keremaydin/acadport/internal/app/models"
	appRepos "github.com/keremaydin/acadport/internal/app/repositories"
	appServices "github.com/keremaydin/acadport/internal/app/services"
	"github.com/keremaydin/acadport/internal/pkg/apperrors"
	"github.com/keremaydin/acadport/internal/pkg/auth"
)

// defaultAdminEmail identifies the bootstrap administrator account.
const defaultAdminEmail = "admin@acadport.edu"

var defaultCourses = []appModels.CourseCode{
	{Code: "CS", Name: "Computer Science", Number: "070"},
	{Code: "EE", Name: "Electrical Engineering", Number: "081"},
	{Code: "ME", Name: "Mechanical Engineering", Number: "092"},
	{Code: "BBA", Name: "Business Administration", Number: "103"},
}

var defaultDepartments = []appModels.DepartmentCode{
	{Code: "ADM", Name: "Administration", Number: "248"},
	{Code: "SCI", Name: "Sciences", Number: "113"},
	{Code: "HUM", Name: "Humanities", Number: "157"},
}

// CreateDefaultData seeds the code registries and the bootstrap admin account
// if they don't exist. The admin's roll number goes through the regular
// allocator so seeded and provisioned accounts share one number space.
func CreateDefaultData(
	ctx context.Context,
	repos *appRepos.Repositories,
	allocator *appServices.RollNumberService,
	lgr zerolog.Logger,
) error {
	lgr.Info().Msg("Checking/Creating default data (registries/admin)...")
	var finalErr error

	for i := range defaultCourses {
		course := defaultCourses[i]
		err := repos.CourseCodeRepository.Create(ctx, &course)
		if err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Str("code", course.Code).Msg("Error creating course code")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for i := range defaultDepartments {
		department := defaultDepartments[i]
		err := repos.DepartmentCodeRepository.Create(ctx, &department)
		if err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Str("code", department.Code).Msg("Error creating department code")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if err := createDefaultAdmin(ctx, repos, allocator, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func createDefaultAdmin(
	ctx context.Context,
	repos *appRepos.Repositories,
	allocator *appServices.RollNumberService,
	lgr zerolog.Logger,
) error {
	exists, err := repos.UserRepository.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}

	lgr.Info().Msg("Creating default admin user...")

	// Attach the admin to the Administration department.
	var departmentID int64
	departments, err := repos.DepartmentCodeRepository.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error loading departments for admin user")
		return err
	}
	for _, dept := range departments {
		if dept.Code == "ADM" {
			departmentID = dept.ID
			break
		}
	}
	if departmentID == 0 && len(departments) > 0 {
		departmentID = departments[0].ID
	}
	if departmentID == 0 {
		err := errors.New("no department found for admin user")
		lgr.Error().Err(err).Msg("Cannot create admin user")
		return err
	}

	rollNumber, err := allocator.Allocate(ctx, appModels.UserTypeAdmin, nil, &departmentID)
	if err != nil {
		lgr.Error().Err(err).Msg("Error allocating admin roll number")
		return err
	}

	hashedPassword, err := auth.HashPassword("Admin123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Name:         "System Administrator",
		Email:        defaultAdminEmail,
		Password:     hashedPassword,
		UserType:     appModels.UserTypeAdmin,
		RollNumber:   rollNumber,
		DepartmentID: &departmentID,
		IsActive:     true,
	}

	adminID, err := repos.UserRepository.CreateUser(ctx, admin)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Int64("adminID", adminID).Str("rollNumber", rollNumber).Msg("Default admin user created successfully")
	return nil
}
