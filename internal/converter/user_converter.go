package converter

import (
	"docscript/internal/delivery/dto"
	"docscript/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO, dropping the password hash
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role.String(),
		Approved:  user.Approved,
		CreatedAt: user.CreatedAt,
	}
}

func UsersToResponse(users []entity.User) []*dto.UserResponse {
	responses := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserToResponse(&users[i]))
	}
	return responses
}
