package mongodb_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/frahmantamala/employee-admin/internal/user"
	"github.com/frahmantamala/employee-admin/internal/user/mongodb"
)

func TestUserFilter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Query Filter Suite")
}

var _ = Describe("BuildFilter", func() {
	It("should return an empty document when no filters are set", func() {
		Expect(mongodb.BuildFilter(user.ListFilter{})).To(Equal(bson.M{}))
	})

	It("should match the name against all four fields with a case-insensitive regex", func() {
		got := mongodb.BuildFilter(user.ListFilter{Name: "jan"})

		pattern := primitive.Regex{Pattern: "jan", Options: "i"}
		Expect(got).To(Equal(bson.M{"$and": []bson.M{
			{"$or": []bson.M{
				{"firstName": pattern},
				{"lastName": pattern},
				{"username": pattern},
				{"email": pattern},
			}},
		}}))
	})

	It("should filter on status alone", func() {
		active := true
		got := mongodb.BuildFilter(user.ListFilter{Status: &active})

		Expect(got).To(Equal(bson.M{"$and": []bson.M{
			{"status": true},
		}}))
	})

	It("should AND the name and status filters", func() {
		inactive := false
		got := mongodb.BuildFilter(user.ListFilter{Name: "jan", Status: &inactive})

		and, ok := got["$and"].([]bson.M)
		Expect(ok).To(BeTrue())
		Expect(and).To(HaveLen(2))
		Expect(and[0]).To(HaveKey("$or"))
		Expect(and[1]).To(Equal(bson.M{"status": false}))
	})

	It("should filter for inactive users when status is false", func() {
		inactive := false
		got := mongodb.BuildFilter(user.ListFilter{Status: &inactive})

		Expect(got["$and"]).To(ContainElement(bson.M{"status": false}))
	})
})
