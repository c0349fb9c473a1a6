package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexramsey92/ai-web-design-workbench/internal/brand"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Brand Methods
// -----------------------------------------------------------------------------

// GetProfileBySlug loads an active brand with its visual identity and voice
// profile. It returns nil, nil when no such brand exists.
func (db *DB) GetProfileBySlug(ctx context.Context, slug string) (*brand.Profile, error) {
	var r brandRow
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, slug, tagline, description, industry, target_audience,
		        value_proposition, brand_personality
		 FROM brands WHERE slug = $1 AND is_active`,
		slug,
	).Scan(&r.ID, &r.Name, &r.Slug, &r.Tagline, &r.Description, &r.Industry,
		&r.TargetAudience, &r.ValueProposition, &r.Personality)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	p := r.profile()

	p.Visual, err = db.getVisualIdentity(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	p.Voice, err = db.getVoiceProfile(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (db *DB) getVisualIdentity(ctx context.Context, brandID int64) (*brand.VisualIdentity, error) {
	var v visualRow
	err := db.pool.QueryRow(ctx,
		`SELECT primary_color, secondary_color, accent_color, success_color,
		        warning_color, error_color, neutral_50, neutral_100, neutral_900,
		        heading_font, heading_font_url, body_font, body_font_url, code_font,
		        spacing_unit, border_radius_sm, border_radius_md, border_radius_lg,
		        use_shadows, use_gradients, use_animations
		 FROM brand_visual_identity WHERE brand_id = $1`,
		brandID,
	).Scan(&v.PrimaryColor, &v.SecondaryColor, &v.AccentColor, &v.SuccessColor,
		&v.WarningColor, &v.ErrorColor, &v.Neutral50, &v.Neutral100, &v.Neutral900,
		&v.HeadingFont, &v.HeadingFontURL, &v.BodyFont, &v.BodyFontURL, &v.CodeFont,
		&v.SpacingUnit, &v.BorderRadiusSM, &v.BorderRadiusMD, &v.BorderRadiusLG,
		&v.UseShadows, &v.UseGradients, &v.UseAnimations)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get visual identity: %w", err)
	}
	return v.identity(), nil
}

func (db *DB) getVoiceProfile(ctx context.Context, brandID int64) (*brand.VoiceProfile, error) {
	var v voiceRow
	err := db.pool.QueryRow(ctx,
		`SELECT tone, formality, enthusiasm, preferred_person, sentence_length,
		        use_contractions, use_emojis, use_technical_jargon, preferred_terms,
		        avoid_terms, brand_specific_terms, key_messages, value_props
		 FROM brand_voice_profiles WHERE brand_id = $1`,
		brandID,
	).Scan(&v.Tone, &v.Formality, &v.Enthusiasm, &v.PreferredPerson, &v.SentenceLength,
		&v.UseContractions, &v.UseEmojis, &v.UseTechnicalJargon, &v.PreferredTerms,
		&v.AvoidTerms, &v.BrandSpecificTerms, &v.KeyMessages, &v.ValueProps)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get voice profile: %w", err)
	}
	return v.profile(), nil
}

// ListProfiles returns active brands ordered by name.
func (db *DB) ListProfiles(ctx context.Context) ([]BrandSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, slug, COALESCE(industry, ''), is_template,
		        COALESCE(updated_at, created_at, to_timestamp(0))
		 FROM brands WHERE is_active
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []BrandSummary{}
	for rows.Next() {
		var b BrandSummary
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.Industry, &b.IsTemplate, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate brands: %w", err)
	}
	return brands, nil
}
