package service

import (
	"context"
	"strings"

	"ClubHub/internal/model"
	"ClubHub/internal/permission"
	"ClubHub/internal/pkg"
	"ClubHub/internal/repository/mysql"

	"gorm.io/gorm"
)

const postNotFound = "Post not found."

type PostService struct {
	access clubAccess
	posts  *mysql.PostRepository
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		access: newClubAccess(db),
		posts:  &mysql.PostRepository{DB: db},
	}
}

func (s *PostService) Create(ctx context.Context, actor permission.Actor, clubID uint64, title, content string) (*model.Post, error) {
	_, perms, err := s.access.resolve(ctx, actor, clubID)
	if err != nil {
		return nil, err
	}
	if !perms.CanPost {
		return nil, pkg.Forbidden("You do not have permission to post in this club.")
	}
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if err := required(field("Title", title), field("Content", content)); err != nil {
		return nil, err
	}
	post := &model.Post{Title: title, Content: content, UserID: actor.ID, ClubID: clubID}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, storeError(err, "Club not found.", "")
	}
	return post, nil
}

// editable loads the post and checks that actor may change it. A non-zero
// clubID must match the post's club.
func (s *PostService) editable(ctx context.Context, actor permission.Actor, postID, clubID uint64) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, storeError(err, postNotFound, "")
	}
	if clubID != 0 && post.ClubID != clubID {
		return nil, pkg.NotFound(postNotFound)
	}
	_, perms, err := s.access.resolve(ctx, actor, post.ClubID)
	if err != nil {
		return nil, err
	}
	if !perms.CanEditContent(post.UserID) {
		return nil, pkg.Forbidden("You do not have permission to change this post.")
	}
	return post, nil
}

func (s *PostService) Update(ctx context.Context, actor permission.Actor, postID uint64, title, content string) (int64, error) {
	if _, err := s.editable(ctx, actor, postID, 0); err != nil {
		return 0, err
	}
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if err := required(field("Title", title), field("Content", content)); err != nil {
		return 0, err
	}
	n, err := s.posts.Update(ctx, postID, title, content)
	if err != nil {
		return 0, storeError(err, postNotFound, "")
	}
	return n, nil
}

// Delete removes a post of clubID. A post from another club is reported as
// not found.
func (s *PostService) Delete(ctx context.Context, actor permission.Actor, clubID, postID uint64) (int64, error) {
	if _, err := s.editable(ctx, actor, postID, clubID); err != nil {
		return 0, err
	}
	n, err := s.posts.Delete(ctx, postID)
	if err != nil {
		return 0, storeError(err, postNotFound, "")
	}
	if n == 0 {
		return 0, pkg.NotFound(postNotFound)
	}
	return n, nil
}

func (s *PostService) Get(ctx context.Context, actor permission.Actor, postID uint64) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, storeError(err, postNotFound, "")
	}
	_, perms, err := s.access.resolve(ctx, actor, post.ClubID)
	if err != nil {
		return nil, err
	}
	if !perms.CanViewContent() {
		return nil, pkg.Forbidden("Join the club to see its posts.")
	}
	return post, nil
}
