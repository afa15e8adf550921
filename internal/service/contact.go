package service

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gblsmlo/lemind/internal/core/result"
	"github.com/gblsmlo/lemind/internal/core/storage"
	"github.com/gblsmlo/lemind/internal/domain"
)

const AvatarBucket = "avatars"

var avatarExts = map[string]struct{}{".png": {}, ".jpg": {}, ".jpeg": {}, ".webp": {}, ".gif": {}}

type ContactService struct {
	*Crud[domain.Contact, domain.ContactInsert, domain.ContactUpdate]
	repo   domain.ContactRepository
	bucket storage.Bucket
}

func NewContactService(repo domain.ContactRepository, bucket storage.Bucket, l *zap.Logger) *ContactService {
	s := &ContactService{repo: repo, bucket: bucket}
	s.Crud = NewCrud(CrudConfig[domain.Contact, domain.ContactInsert, domain.ContactUpdate]{
		Entity:       "Contact",
		Plural:       "contacts",
		Repo:         repo,
		Sortable:     domain.ContactSortable,
		ToEntity:     domain.ContactInsert.ToEntity,
		Changes:      domain.ContactUpdate.Changes,
		BeforeCreate: s.checkDocumentOnCreate,
		BeforeUpdate: s.checkDocumentOnUpdate,
	}, l)
	return s
}

const documentTaken = "A contact with this document already exists in this space"

func (s *ContactService) checkDocumentOnCreate(ctx context.Context, in domain.ContactInsert) (*result.Failure, error) {
	if in.Document == nil || strings.TrimSpace(*in.Document) == "" {
		return nil, nil
	}
	dup, err := s.repo.FindByDocumentInSpace(ctx, strings.TrimSpace(*in.Document), in.SpaceID, "")
	if err != nil || dup == nil {
		return nil, err
	}
	return conflict(documentTaken), nil
}

func (s *ContactService) checkDocumentOnUpdate(ctx context.Context, id string, in domain.ContactUpdate) (*result.Failure, error) {
	if in.Document == nil || strings.TrimSpace(*in.Document) == "" {
		return nil, nil
	}
	cur, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		f := s.notFound()
		return &f, nil
	}
	dup, err := s.repo.FindByDocumentInSpace(ctx, strings.TrimSpace(*in.Document), cur.SpaceID, id)
	if err != nil || dup == nil {
		return nil, err
	}
	return conflict(documentTaken), nil
}

func (s *ContactService) FindByDocument(ctx context.Context, spaceID, document string) result.Result[domain.RowOutput[domain.Contact]] {
	return run(&s.actor, "find", s.one, func() result.Result[domain.RowOutput[domain.Contact]] {
		if strings.TrimSpace(document) == "" {
			return result.Fail[domain.RowOutput[domain.Contact]](result.Failure{Kind: result.Validation, Message: "document is required"})
		}
		c, err := s.repo.FindByDocumentInSpace(ctx, strings.TrimSpace(document), spaceID, "")
		return row(&s.actor, "find", c, err)
	})
}

// UploadAvatar stores the image and points the contact's avatarUrl at it.
func (s *ContactService) UploadAvatar(ctx context.Context, id, filename string, r io.Reader) result.Result[domain.RowOutput[domain.Contact]] {
	var name string
	up := run(&s.actor, "upload", s.one+" avatar", func() result.Result[string] {
		if id == "" {
			return result.Fail[string](s.idRequired())
		}
		ext := strings.ToLower(path.Ext(filename))
		if _, ok := avatarExts[ext]; !ok {
			return result.Fail[string](result.Failure{
				Kind:    result.Validation,
				Message: "avatar must be an image (gif, jpeg, jpg, png, webp)",
			})
		}
		cur, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return failed[string](&s.actor, "upload", s.one+" avatar", err)
		}
		if cur == nil {
			return result.Fail[string](s.notFound())
		}
		name = cur.SpaceID + "/" + cur.ID + "-" + uuid.NewString() + ext
		url, err := s.bucket.Upload(ctx, AvatarBucket, name, r)
		if err != nil {
			return failed[string](&s.actor, "upload", s.one+" avatar", err)
		}
		return result.Success(url)
	})
	if up.IsFailure() {
		return result.Forward[domain.RowOutput[domain.Contact]](up)
	}
	url := up.Data()
	res := s.Update(ctx, id, domain.ContactUpdate{AvatarURL: &url})
	if res.IsFailure() {
		if err := s.bucket.Remove(ctx, AvatarBucket, name); err != nil {
			s.log.Warn("avatar cleanup", zap.String("object", name), zap.Error(err))
		}
	}
	return res
}
