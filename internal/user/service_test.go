package user_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/frahmantamala/employee-admin/internal"
	"github.com/frahmantamala/employee-admin/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

// Mock repository backed by an ordered slice so pagination is deterministic.
type mockUserRepository struct {
	users       []*user.User
	nextID      int
	findCalls   int
	getCalls    int
	deleteCalls int
	insertError error
	findError   error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{nextID: 1}
}

func (m *mockUserRepository) matches(u *user.User, filter user.ListFilter) bool {
	if filter.Name != "" {
		needle := strings.ToLower(filter.Name)
		match := strings.Contains(strings.ToLower(u.FirstName), needle) ||
			strings.Contains(strings.ToLower(u.LastName), needle) ||
			strings.Contains(strings.ToLower(u.Username), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle)
		if !match {
			return false
		}
	}
	if filter.Status != nil && u.Status != *filter.Status {
		return false
	}
	return true
}

func (m *mockUserRepository) filtered(filter user.ListFilter) []*user.User {
	out := make([]*user.User, 0)
	for _, u := range m.users {
		if m.matches(u, filter) {
			out = append(out, u)
		}
	}
	return out
}

func (m *mockUserRepository) Find(ctx context.Context, filter user.ListFilter, skip, limit int64) ([]*user.User, error) {
	if m.findError != nil {
		return nil, m.findError
	}
	m.findCalls++
	matched := m.filtered(filter)

	start := int(skip)
	end := start + int(limit)
	if start >= len(matched) {
		return []*user.User{}, nil
	}
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]*user.User, 0, end-start)
	for _, u := range matched[start:end] {
		stripped := *u
		stripped.PasswordHash = ""
		page = append(page, &stripped)
	}
	return page, nil
}

func (m *mockUserRepository) Count(ctx context.Context, filter user.ListFilter) (int64, error) {
	return int64(len(m.filtered(filter))), nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	m.getCalls++
	for _, u := range m.users {
		if u.ID == id {
			stripped := *u
			stripped.PasswordHash = ""
			return &stripped, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	m.getCalls++
	for _, u := range m.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) FindOneByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) FindOneByUsername(ctx context.Context, username string) (*user.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) Insert(ctx context.Context, u *user.User) (*user.User, error) {
	if m.insertError != nil {
		return nil, m.insertError
	}
	copied := *u
	copied.ID = fmt.Sprintf("user-%d", m.nextID)
	m.nextID++
	m.users = append(m.users, &copied)
	return &copied, nil
}

func (m *mockUserRepository) Save(ctx context.Context, u *user.User) (*user.User, error) {
	for i, existing := range m.users {
		if existing.ID == u.ID {
			copied := *u
			m.users[i] = &copied
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %s not found", u.ID)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.deleteCalls++
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeHasher makes hashes recognizable without the cost of argon2.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, encoded string) bool {
	return encoded == "hashed:"+password
}

func validCreateDTO() user.CreateUserDTO {
	return user.CreateUserDTO{
		FirstName: "Jane",
		LastName:  "Doe",
		Username:  "janedoe",
		Email:     "jane@example.com",
		Password:  "supersecret",
	}
}

var _ = Describe("UserService", func() {
	var (
		service *user.Service
		repo    *mockUserRepository
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(repo, fakeHasher{}, logger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		Context("with a fresh email and username", func() {
			It("should persist the user with a hashed password", func() {
				dto := validCreateDTO()

				created, err := service.Create(ctx, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(created).ToNot(BeNil())
				Expect(created.ID).ToNot(BeEmpty())
				Expect(created.FirstName).To(Equal("Jane"))
				Expect(created.PasswordHash).ToNot(Equal(dto.Password))
				Expect(created.PasswordHash).To(Equal("hashed:supersecret"))
			})

			It("should default status to active when not provided", func() {
				created, err := service.Create(ctx, validCreateDTO())

				Expect(err).ToNot(HaveOccurred())
				Expect(created.Status).To(BeTrue())
			})

			It("should honor an explicit inactive status", func() {
				dto := validCreateDTO()
				inactive := false
				dto.Status = &inactive

				created, err := service.Create(ctx, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(created.Status).To(BeFalse())
			})
		})

		Context("when the email is already taken", func() {
			It("should fail with a conflict even if the username is new", func() {
				_, err := service.Create(ctx, validCreateDTO())
				Expect(err).ToNot(HaveOccurred())

				dto := validCreateDTO()
				dto.Username = "someoneelse"

				_, err = service.Create(ctx, dto)

				appErr, ok := errors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(errors.ErrorTypeConflict))
			})
		})

		Context("when the username is already taken", func() {
			It("should fail with a conflict even if the email is new", func() {
				_, err := service.Create(ctx, validCreateDTO())
				Expect(err).ToNot(HaveOccurred())

				dto := validCreateDTO()
				dto.Email = "other@example.com"

				_, err = service.Create(ctx, dto)

				appErr, ok := errors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(errors.ErrorTypeConflict))
			})
		})

		Context("with a malformed payload", func() {
			It("should enumerate the missing field in the validation error", func() {
				dto := validCreateDTO()
				dto.Email = ""

				_, err := service.Create(ctx, dto)

				appErr, ok := errors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))

				details, ok := appErr.Details.(errors.ValidationErrors)
				Expect(ok).To(BeTrue())
				fields := make([]string, 0, len(details.Errors))
				for _, fieldErr := range details.Errors {
					fields = append(fields, fieldErr.Field)
				}
				Expect(fields).To(ContainElement("email"))
			})

			It("should reject an invalid email address", func() {
				dto := validCreateDTO()
				dto.Email = "not-an-email"

				_, err := service.Create(ctx, dto)

				appErr, ok := errors.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
			})
		})
	})

	Describe("Find", func() {
		BeforeEach(func() {
			seed := []user.CreateUserDTO{
				{FirstName: "Janet", LastName: "Smith", Username: "jsmith", Email: "janet@example.com", Password: "password1"},
				{FirstName: "Bob", LastName: "Janssen", Username: "bobj", Email: "bob@example.com", Password: "password1"},
				{FirstName: "Alice", LastName: "Brown", Username: "jandals", Email: "alice@example.com", Password: "password1"},
				{FirstName: "Carol", LastName: "White", Username: "carol", Email: "carol.jan@example.com", Password: "password1"},
				{FirstName: "Dave", LastName: "Black", Username: "dave", Email: "dave@example.com", Password: "password1"},
			}
			for _, dto := range seed {
				_, err := service.Create(ctx, dto)
				Expect(err).ToNot(HaveOccurred())
			}
		})

		It("should match the name filter across all four fields, case-insensitively", func() {
			page, err := service.Find(ctx, user.QueryParams{Name: "JAN", Page: 1, Limit: 10})

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Count).To(Equal(int64(4)))

			usernames := make([]string, 0, len(page.Results))
			for _, u := range page.Results {
				usernames = append(usernames, u.Username)
			}
			Expect(usernames).To(ConsistOf("jsmith", "bobj", "jandals", "carol"))
		})

		It("should filter by status", func() {
			inactive := false
			_, err := service.Update(ctx, repo.users[0].ID, user.UpdateUserDTO{Status: &inactive})
			Expect(err).ToNot(HaveOccurred())

			page, err := service.Find(ctx, user.QueryParams{Status: "false", Page: 1, Limit: 10})

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Count).To(Equal(int64(1)))
			Expect(page.Results[0].Status).To(BeFalse())
		})

		It("should never include password hashes in results", func() {
			page, err := service.Find(ctx, user.QueryParams{Page: 1, Limit: 10})

			Expect(err).ToNot(HaveOccurred())
			for _, u := range page.Results {
				Expect(u.PasswordHash).To(BeEmpty())
			}
		})

		Context("pagination", func() {
			BeforeEach(func() {
				for i := 0; i < 20; i++ {
					dto := user.CreateUserDTO{
						FirstName: fmt.Sprintf("Extra%02d", i),
						LastName:  "Person",
						Username:  fmt.Sprintf("extra%02d", i),
						Email:     fmt.Sprintf("extra%02d@example.com", i),
						Password:  "password1",
					}
					_, err := service.Create(ctx, dto)
					Expect(err).ToNot(HaveOccurred())
				}
			})

			It("should skip the first page and return records 11-20", func() {
				page, err := service.Find(ctx, user.QueryParams{Page: 2, Limit: 10})

				Expect(err).ToNot(HaveOccurred())
				Expect(page.Count).To(Equal(int64(25)))
				Expect(page.CurrentPage).To(Equal(int64(2)))
				Expect(page.Results).To(HaveLen(10))
				Expect(page.Results[0].ID).To(Equal(repo.users[10].ID))
				Expect(page.Results[9].ID).To(Equal(repo.users[19].ID))
			})

			It("should round total pages up", func() {
				page, err := service.Find(ctx, user.QueryParams{Page: 1, Limit: 10})

				Expect(err).ToNot(HaveOccurred())
				Expect(page.Count).To(Equal(int64(25)))
				Expect(page.TotalPages).To(Equal(int64(3)))
			})

			It("should default page and limit when out of range", func() {
				page, err := service.Find(ctx, user.QueryParams{Page: 0, Limit: 0})

				Expect(err).ToNot(HaveOccurred())
				Expect(page.CurrentPage).To(Equal(user.DefaultPage))
				Expect(page.Results).To(HaveLen(int(user.DefaultLimit)))
			})
		})
	})

	Describe("GetByID", func() {
		It("should return nil for an empty id without querying the store", func() {
			u, err := service.GetByID(ctx, "")

			Expect(err).ToNot(HaveOccurred())
			Expect(u).To(BeNil())
			Expect(repo.getCalls).To(BeZero())
		})

		It("should return nil for an unknown id", func() {
			u, err := service.GetByID(ctx, "missing")

			Expect(err).ToNot(HaveOccurred())
			Expect(u).To(BeNil())
		})

		It("should round-trip a created user without exposing the password", func() {
			created, err := service.Create(ctx, validCreateDTO())
			Expect(err).ToNot(HaveOccurred())

			fetched, err := service.GetByID(ctx, created.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(fetched).ToNot(BeNil())
			Expect(fetched.FirstName).To(Equal("Jane"))
			Expect(fetched.LastName).To(Equal("Doe"))
			Expect(fetched.Username).To(Equal("janedoe"))
			Expect(fetched.Email).To(Equal("jane@example.com"))
			Expect(fetched.PasswordHash).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		It("should return nil for a non-existent id", func() {
			name := "Ghost"
			updated, err := service.Update(ctx, "missing", user.UpdateUserDTO{FirstName: &name})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated).To(BeNil())
		})

		It("should apply an explicit status false", func() {
			created, err := service.Create(ctx, validCreateDTO())
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Status).To(BeTrue())

			inactive := false
			updated, err := service.Update(ctx, created.ID, user.UpdateUserDTO{Status: &inactive})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Status).To(BeFalse())

			fetched, err := service.GetByID(ctx, created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(fetched.Status).To(BeFalse())
		})

		It("should leave absent fields untouched", func() {
			created, err := service.Create(ctx, validCreateDTO())
			Expect(err).ToNot(HaveOccurred())

			name := "Janine"
			updated, err := service.Update(ctx, created.ID, user.UpdateUserDTO{FirstName: &name})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.FirstName).To(Equal("Janine"))
			Expect(updated.LastName).To(Equal("Doe"))
			Expect(updated.Email).To(Equal("jane@example.com"))
		})

		It("should re-hash a provided password", func() {
			created, err := service.Create(ctx, validCreateDTO())
			Expect(err).ToNot(HaveOccurred())

			newPassword := "anothersecret"
			updated, err := service.Update(ctx, created.ID, user.UpdateUserDTO{Password: &newPassword})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.PasswordHash).To(Equal("hashed:anothersecret"))
			Expect(updated.PasswordHash).ToNot(Equal(newPassword))
		})

		It("should reject an invalid provided email", func() {
			created, err := service.Create(ctx, validCreateDTO())
			Expect(err).ToNot(HaveOccurred())

			bad := "nope"
			_, err = service.Update(ctx, created.ID, user.UpdateUserDTO{Email: &bad})

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(errors.ErrorTypeValidation))
		})
	})

	Describe("Delete", func() {
		It("should return false for an empty id without querying the store", func() {
			deleted, err := service.Delete(ctx, "")

			Expect(err).ToNot(HaveOccurred())
			Expect(deleted).To(BeFalse())
			Expect(repo.deleteCalls).To(BeZero())
		})

		It("should return false for a non-existent id", func() {
			deleted, err := service.Delete(ctx, "missing")

			Expect(err).ToNot(HaveOccurred())
			Expect(deleted).To(BeFalse())
		})

		It("should delete an existing user and make it unfetchable", func() {
			created, err := service.Create(ctx, validCreateDTO())
			Expect(err).ToNot(HaveOccurred())

			deleted, err := service.Delete(ctx, created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(deleted).To(BeTrue())

			fetched, err := service.GetByID(ctx, created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(fetched).To(BeNil())
		})
	})
})
