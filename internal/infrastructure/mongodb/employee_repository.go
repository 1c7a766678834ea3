package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/empleados-api/internal/domain"
	"github.com/jhoicas/empleados-api/internal/domain/entity"
	"github.com/jhoicas/empleados-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// employeeDoc mapeo BSON de la colección employees. La foto se guarda como
// clave opaca (picture_key), nunca como ruta de disco.
type employeeDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FirstName     string             `bson:"first_name"`
	LastName      string             `bson:"last_name"`
	Email         string             `bson:"email"`
	Position      string             `bson:"position"`
	Salary        float64            `bson:"salary"`
	DateOfJoining time.Time          `bson:"date_of_joining"`
	Department    string             `bson:"department"`
	PictureKey    string             `bson:"picture_key,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

// EmployeeRepo implementación del puerto EmployeeRepository sobre MongoDB.
type EmployeeRepo struct {
	col *mongo.Collection
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(db *mongo.Database) *EmployeeRepo {
	return &EmployeeRepo{col: db.Collection(employeesCollection)}
}

// Create persiste un nuevo empleado y devuelve el id asignado.
func (r *EmployeeRepo) Create(ctx context.Context, emp *entity.Employee) (string, error) {
	res, err := r.col.InsertOne(ctx, toDoc(emp))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicate
		}
		return "", fmt.Errorf("insert employee: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// GetByID obtiene un empleado por id; (nil, nil) si no existe.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("id de empleado inválido: %w", err)
	}
	var doc employeeDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return fromDoc(&doc), nil
}

// List lista empleados. Los filtros no vacíos se aplican como subcadena
// case-insensitive ($regex con opción i y patrón escapado). Orden nativo
// del store, sin garantía explícita.
func (r *EmployeeRepo) List(ctx context.Context, filter repository.EmployeeFilter) ([]*entity.Employee, error) {
	query := bson.M{}
	if filter.Department != "" {
		query["department"] = containsPattern(filter.Department)
	}
	if filter.Position != "" {
		query["position"] = containsPattern(filter.Position)
	}
	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)
	var list []*entity.Employee
	for cur.Next(ctx) {
		var doc employeeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode employee: %w", err)
		}
		list = append(list, fromDoc(&doc))
	}
	return list, cur.Err()
}

// Update reescribe el documento completo (last write wins; no hay token de
// concurrencia optimista).
func (r *EmployeeRepo) Update(ctx context.Context, emp *entity.Employee) error {
	oid, err := primitive.ObjectIDFromHex(emp.ID)
	if err != nil {
		return fmt.Errorf("id de empleado inválido: %w", err)
	}
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, toDoc(emp))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// Delete elimina un empleado; devuelve false si el id no existía.
func (r *EmployeeRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("id de empleado inválido: %w", err)
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete employee: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// ExistsByEmail indica si algún empleado ya usa el email.
func (r *EmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count employees: %w", err)
	}
	return n > 0, nil
}

func containsPattern(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func toDoc(e *entity.Employee) employeeDoc {
	doc := employeeDoc{
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Position:      e.Position,
		Salary:        e.Salary,
		DateOfJoining: e.DateOfJoining,
		Department:    e.Department,
		PictureKey:    e.Picture.Key,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.ID != "" {
		if oid, err := primitive.ObjectIDFromHex(e.ID); err == nil {
			doc.ID = oid
		}
	}
	return doc
}

func fromDoc(d *employeeDoc) *entity.Employee {
	return &entity.Employee{
		ID:            d.ID.Hex(),
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		Position:      d.Position,
		Salary:        d.Salary,
		DateOfJoining: d.DateOfJoining,
		Department:    d.Department,
		Picture:       entity.AttachmentRef{Key: d.PictureKey},
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
