package dashboard

import (
	"context"
	"fmt"

	"github.com/Ramsey-B/collably/pkg/api"
	"github.com/Ramsey-B/collably/pkg/apierrors"
	"github.com/Ramsey-B/collably/pkg/models"
	"github.com/Ramsey-B/collably/pkg/store"
)

// AdminLogin signs in as the admin and persists the session flags
func (d *Dashboard) AdminLogin(ctx context.Context, creds models.Credentials) (models.LoginResponse, error) {
	if err := models.Validate(creds); err != nil {
		return models.LoginResponse{}, err
	}

	var resp models.LoginResponse
	err := d.client.Call(ctx, api.AuthAdminLogin, api.Request{
		JSON: models.AdminLoginBody{Email: creds.Identifier, Password: creds.Password},
	}, &resp)
	if err != nil {
		d.logger.WithContext(ctx).WithError(err).Warn("admin login failed")
		return models.LoginResponse{}, err
	}
	if resp.Token == "" {
		return models.LoginResponse{}, apierrors.New(apierrors.KindUnauthorized, "Login response did not include a token")
	}

	name := "Admin"
	if resp.Admin != nil && resp.Admin.Name != "" {
		name = resp.Admin.Name
	}
	if err := d.session.SaveAdmin(ctx, resp.Token, name); err != nil {
		return models.LoginResponse{}, fmt.Errorf("failed to save session: %w", err)
	}

	d.logger.WithContext(ctx).WithField("user_name", name).Info("Logged in as admin")
	return resp, nil
}

// BrandLogin signs in as a brand and persists the session flags, including the brand id
func (d *Dashboard) BrandLogin(ctx context.Context, creds models.Credentials) (models.LoginResponse, error) {
	if err := models.Validate(creds); err != nil {
		return models.LoginResponse{}, err
	}

	var resp models.LoginResponse
	err := d.client.Call(ctx, api.AuthBrandLogin, api.Request{
		JSON: models.BrandLoginBody{ContactEmail: creds.Identifier, Password: creds.Password},
	}, &resp)
	if err != nil {
		d.logger.WithContext(ctx).WithError(err).Warn("brand login failed")
		return models.LoginResponse{}, err
	}
	if resp.Token == "" || resp.Brand == nil {
		return models.LoginResponse{}, apierrors.New(apierrors.KindUnauthorized, "Login response did not include a brand token")
	}

	if err := d.session.SaveBrand(ctx, resp.Token, *resp.Brand); err != nil {
		return models.LoginResponse{}, fmt.Errorf("failed to save session: %w", err)
	}

	d.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"brand_id":   resp.Brand.ID,
		"brand_name": resp.Brand.BrandName,
	}).Info("Logged in as brand")
	return resp, nil
}

// Logout clears the session and resets every slice
func (d *Dashboard) Logout(ctx context.Context) error {
	if err := d.session.Clear(ctx); err != nil {
		return err
	}
	d.dispatcher.Dispatch(store.Reset("auth/logout", ""))
	return nil
}
