package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/samber/oops"

	apperrors "blogapp/internal/errors"
	"blogapp/internal/model"
	"blogapp/internal/repository"
	"blogapp/internal/service"
)

// Fixture is the seed file layout.
type Fixture struct {
	Users []FixtureUser `json:"users"`
}

// FixtureUser is a user to register together with the posts they author.
type FixtureUser struct {
	Name        string        `json:"name"`
	Username    string        `json:"username"`
	Email       string        `json:"email"`
	Password    string        `json:"password"`
	DateOfBirth string        `json:"dateOfBirth,omitempty"`
	Posts       []FixturePost `json:"posts"`
}

// FixturePost is a post of a FixtureUser.
type FixturePost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Result counts what a seed run did.
type Result struct {
	UsersCreated int
	UsersSkipped int
	PostsCreated int
}

type emailLookup interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

func loadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Code("FIXTURE_READ_FAILED").With("file", path).Wrap(err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, oops.Code("FIXTURE_INVALID").With("file", path).Wrap(err)
	}
	return &f, nil
}

// seed registers fixture users through the auth service so passwords are hashed the
// same way as on the register endpoint. It stops at the first error.
func seed(ctx context.Context, users emailLookup, authSvc service.AuthService, blogSvc service.BlogService, f *Fixture) (Result, error) {
	var res Result
	for _, fu := range f.Users {
		_, err := users.FindByEmail(ctx, fu.Email)
		if err == nil {
			res.UsersSkipped++
			continue
		}
		if !repository.IsNotFound(err) {
			return res, oops.Code("SEED_FAILED").With("email", fu.Email).Wrap(err)
		}

		var dob *time.Time
		if fu.DateOfBirth != "" {
			parsed, err := time.Parse("2006-01-02", fu.DateOfBirth)
			if err != nil {
				return res, oops.Code("FIXTURE_INVALID").With("email", fu.Email).Wrapf(err, "date of birth")
			}
			dob = &parsed
		}

		user, _, err := authSvc.Register(ctx, service.RegisterInput{
			Name:        fu.Name,
			Username:    fu.Username,
			Email:       fu.Email,
			Password:    fu.Password,
			DateOfBirth: dob,
		})
		if errors.Is(err, apperrors.ErrValidationConflict) {
			// Username taken, or the email only differs in case.
			res.UsersSkipped++
			continue
		}
		if err != nil {
			return res, oops.Code("SEED_FAILED").With("email", fu.Email).Wrap(err)
		}
		res.UsersCreated++

		for i, fp := range fu.Posts {
			if _, err := blogSvc.Create(ctx, user, fp.Title, fp.Content); err != nil {
				return res, oops.Code("SEED_FAILED").With("email", fu.Email, "post", i).Wrap(fmt.Errorf("create post %q: %w", fp.Title, err))
			}
			res.PostsCreated++
		}
	}
	return res, nil
}
