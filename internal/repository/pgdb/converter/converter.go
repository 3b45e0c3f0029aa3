package converter

import "github.com/DRSN-tech/grocery-backend/internal/domain"

// ToProductEntity преобразует модель PostgreSQL в доменную сущность.
func ToProductEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:              model.ID,
		Name:            model.Name,
		UnitPrice:       model.UnitPrice,
		Unit:            model.Unit,
		Stock:           model.Stock,
		DiscountPercent: model.DiscountPercent,
	}
}

// ToOrderEntity преобразует модель PostgreSQL в доменную сущность.
func ToOrderEntity(model *OrderModel) *domain.Order {
	return &domain.Order{
		ID:              model.ID,
		CustomerName:    model.CustomerName,
		CustomerAddress: model.CustomerAddress,
		OrderDate:       model.OrderDate,
		TotalAmount:     model.TotalAmount,
	}
}

// ToUserEntity преобразует модель PostgreSQL в доменную сущность.
func ToUserEntity(model *UserModel) *domain.User {
	return &domain.User{
		ID:           model.ID,
		Username:     model.Username,
		PasswordHash: model.PasswordHash,
		Role:         domain.Role(model.Role),
	}
}
