package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/developerakkoo/Voter-Management-API-sub000/dto"
	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

func TestParseIDBatch(t *testing.T) {
	sub := bson.NewObjectID()
	v1 := bson.NewObjectID()
	v2 := bson.NewObjectID()

	sid, ids, vt, err := parseIDBatch(sub.Hex(), []string{v1.Hex(), v2.Hex()}, "voter")
	require.NoError(t, err)
	require.Equal(t, sub, sid)
	require.Equal(t, []bson.ObjectID{v1, v2}, ids)
	require.Equal(t, model.VoterTypeMain, vt)
}

func TestParseIDBatchDeduplicates(t *testing.T) {
	sub := bson.NewObjectID()
	v1 := bson.NewObjectID()
	v2 := bson.NewObjectID()

	_, ids, _, err := parseIDBatch(sub.Hex(), []string{v1.Hex(), v2.Hex(), v1.Hex()}, "voterfour")
	require.NoError(t, err)
	require.Equal(t, []bson.ObjectID{v1, v2}, ids)
}

func TestParseIDBatchRejectsBadInput(t *testing.T) {
	sub := bson.NewObjectID().Hex()
	vid := bson.NewObjectID().Hex()

	_, _, _, err := parseIDBatch("not-hex", []string{vid}, "voter")
	require.EqualError(t, err, "invalid subAdminId")

	_, _, _, err = parseIDBatch(sub, nil, "voter")
	require.EqualError(t, err, "voterIds must not be empty")

	_, _, _, err = parseIDBatch(sub, []string{vid}, "everyone")
	require.ErrorIs(t, err, model.ErrUnknownVoterType)

	_, _, _, err = parseIDBatch(sub, []string{"zzz"}, "voter")
	require.Error(t, err)
	require.Contains(t, err.Error(), `invalid voter id "zzz"`)
}

func TestBuildMembers(t *testing.T) {
	ref := bson.NewObjectID()
	members, err := buildMembers([]dto.SurveyMemberRequest{
		{Name: "Sunita", Age: 34, Phone: "9876543210", Relationship: "spouse"},
		{Name: "Ravi", VoterID: ref.Hex(), VoterType: "voterfour"},
	})
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Nil(t, members[0].Voter)
	require.NotNil(t, members[1].Voter)
	require.Equal(t, model.VoterTypeFour, members[1].Voter.Type)
	require.Equal(t, ref, members[1].Voter.ID)
}

func TestBuildMembersEmptyIsNil(t *testing.T) {
	members, err := buildMembers(nil)
	require.NoError(t, err)
	require.Nil(t, members)
}

func TestBuildMembersValidation(t *testing.T) {
	_, err := buildMembers([]dto.SurveyMemberRequest{{Name: ""}})
	require.EqualError(t, err, "member name is required")

	_, err = buildMembers([]dto.SurveyMemberRequest{{Name: "x", Phone: "12345"}})
	require.EqualError(t, err, "member phone must be a 10-digit number")

	_, err = buildMembers([]dto.SurveyMemberRequest{
		{Name: "x", VoterID: bson.NewObjectID().Hex(), VoterType: "nope"},
	})
	require.ErrorIs(t, err, model.ErrUnknownVoterType)

	_, err = buildMembers([]dto.SurveyMemberRequest{
		{Name: "x", VoterID: "bad-hex", VoterType: "voter"},
	})
	require.EqualError(t, err, "invalid member voterId")
}

func TestPhonePattern(t *testing.T) {
	require.True(t, phoneRe.MatchString("9876543210"))
	require.False(t, phoneRe.MatchString("987654321"))
	require.False(t, phoneRe.MatchString("98765432101"))
	require.False(t, phoneRe.MatchString("98765-3210"))
	require.False(t, phoneRe.MatchString(""))
}

func TestUpdateSetOnlySentFields(t *testing.T) {
	name := "Asha"
	age := 52
	set := updateSet(dto.UpdateVoterRequest{Name: &name, Age: &age})
	require.Equal(t, "Asha", set["name"])
	require.Equal(t, 52, set["age"])
	require.NotContains(t, set, "cardNo")
	require.NotContains(t, set, "address")
}

func TestUpdateSetKeepsSentZeroValues(t *testing.T) {
	// An explicit empty string clears the field; a nil pointer leaves it.
	empty := ""
	set := updateSet(dto.UpdateVoterRequest{CardNo: &empty})
	require.Contains(t, set, "cardNo")
	require.Equal(t, "", set["cardNo"])
}

func TestUpdateSetEmptyRequest(t *testing.T) {
	require.Empty(t, updateSet(dto.UpdateVoterRequest{}))
}

func TestValidRegister(t *testing.T) {
	ok := dto.RegisterRequest{FullName: "A B", Email: "a@b.in", Password: "longenough"}
	require.NoError(t, validRegister(ok))

	bad := ok
	bad.FullName = ""
	require.EqualError(t, validRegister(bad), "fullName is required")

	bad = ok
	bad.Email = "not-an-email"
	require.EqualError(t, validRegister(bad), "a valid email is required")

	bad = ok
	bad.Password = "short"
	require.EqualError(t, validRegister(bad), "password must be at least 8 characters")
}

func TestIsBadVoterType(t *testing.T) {
	_, err := model.ParseVoterType("junk")
	require.True(t, isBadVoterType(err))
	require.False(t, isBadVoterType(nil))
}
