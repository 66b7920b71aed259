package dashboard

import (
	"context"

	"github.com/Ramsey-B/collably/pkg/api"
	"github.com/Ramsey-B/collably/pkg/apierrors"
	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/store"
)

// UserBrand names the referrals of one user for one brand
type UserBrand struct {
	UserID  string
	BrandID string
}

type referralActions struct {
	fetchAll       *store.AsyncAction[struct{}, []models.Referral]
	fetchForBrand  *store.AsyncAction[string, []models.Referral]
	fetchUsers     *store.AsyncAction[string, []models.BrandUser]
	fetchUserBrand *store.AsyncAction[UserBrand, []models.Referral]
}

func newReferralActions(client Caller) referralActions {
	return referralActions{
		fetchAll: &store.AsyncAction[struct{}, []models.Referral]{
			Type:  "brandReferrals/fetchAllBrandReferrals",
			Slice: SliceBrandReferrals,
			Op:    store.OpFetchAll,
			Key:   noKey[struct{}],
			Run: func(ctx context.Context, _ struct{}) ([]models.Referral, error) {
				return fetch[[]models.Referral](ctx, client, api.ReferralsList, api.Request{})
			},
		},
		fetchForBrand: &store.AsyncAction[string, []models.Referral]{
			Type:  "brandReferrals/fetchBrandReferrals",
			Slice: SliceBrandReferrals,
			Op:    store.OpFetchAll,
			Key:   noKey[string],
			Scope: idKey,
			Run: func(ctx context.Context, brandID string) ([]models.Referral, error) {
				if err := requireBrandID(brandID); err != nil {
					return nil, err
				}
				return fetch[[]models.Referral](ctx, client, api.ReferralsByBrand, api.Request{
					Params: map[string]string{"brandId": brandID},
				})
			},
		},
		fetchUsers: &store.AsyncAction[string, []models.BrandUser]{
			Type:  "brandUsers/fetchBrandUsers",
			Slice: SliceBrandUsers,
			Op:    store.OpFetchAll,
			Key:   noKey[string],
			Scope: idKey,
			Run: func(ctx context.Context, brandID string) ([]models.BrandUser, error) {
				if err := requireBrandID(brandID); err != nil {
					return nil, err
				}
				return fetch[[]models.BrandUser](ctx, client, api.ReferralsUsersByBrand, api.Request{
					Params: map[string]string{"brandId": brandID},
				})
			},
		},
		fetchUserBrand: &store.AsyncAction[UserBrand, []models.Referral]{
			Type:  "userBrandReferrals/fetchUserBrandReferrals",
			Slice: SliceUserBrandReferrals,
			Op:    store.OpFetchAll,
			Key:   noKey[UserBrand],
			Scope: func(input UserBrand) string { return input.UserID },
			Run: func(ctx context.Context, input UserBrand) ([]models.Referral, error) {
				if err := requireBrandID(input.BrandID); err != nil {
					return nil, err
				}
				if input.UserID == "" {
					return nil, apierrors.Validation("User ID is required")
				}
				return fetch[[]models.Referral](ctx, client, api.ReferralsUserBrand, api.Request{
					Params: map[string]string{"userId": input.UserID, "brandId": input.BrandID},
				})
			},
		},
	}
}

// FetchAllBrandReferrals loads the referrals of every brand
func (d *Dashboard) FetchAllBrandReferrals(ctx context.Context) ([]models.Referral, error) {
	return d.referrals.fetchAll.Dispatch(ctx, d.dispatcher, struct{}{})
}

// FetchBrandReferrals loads the referrals of brandID, or of the logged-in brand when empty
func (d *Dashboard) FetchBrandReferrals(ctx context.Context, brandID string) ([]models.Referral, error) {
	return d.referrals.fetchForBrand.Dispatch(ctx, d.dispatcher, d.brandID(ctx, brandID))
}

// FetchBrandUsers loads the users referred to brandID, or to the logged-in brand when empty
func (d *Dashboard) FetchBrandUsers(ctx context.Context, brandID string) ([]models.BrandUser, error) {
	return d.referrals.fetchUsers.Dispatch(ctx, d.dispatcher, d.brandID(ctx, brandID))
}

// FetchUserBrandReferrals loads one user's referrals for a brand. The slice records the
// user id as its scope.
func (d *Dashboard) FetchUserBrandReferrals(ctx context.Context, userID, brandID string) ([]models.Referral, error) {
	return d.referrals.fetchUserBrand.Dispatch(ctx, d.dispatcher, UserBrand{UserID: userID, BrandID: d.brandID(ctx, brandID)})
}
