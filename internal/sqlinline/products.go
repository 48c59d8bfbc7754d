package sqlinline

const QListProducts = `--sql 50b1b6cf-dd65-4064-bcfc-cc8e10ccd376
select id, slug, title, created_at, updated_at
from products
order by title asc;
`

const QSelectProductBySlug = `--sql f6e0bd56-98ba-4873-890f-43277e94f55c
select id, slug, title, created_at, updated_at
from products
where slug = $1::text
limit 1;
`

const QSelectProductByID = `--sql 69ac6531-89f4-44b1-8fe8-924902a306d6
select id, slug, title, created_at, updated_at
from products
where id = $1::uuid
limit 1;
`

const QListProductVariants = `--sql 209b1504-d23b-4358-acab-d9b60900a5a7
select id, product_id, shape, storefront_variant_id, position
from product_variants
where product_id = $1::uuid
order by position asc;
`

const QListProductFields = `--sql 1f76f477-9cf7-4105-abe9-aa631f2fd724
select id, product_id, field_key, kind, label, max_words, max_bytes, required, required_shapes
from product_fields
where product_id = $1::uuid
order by field_key asc;
`

const QUpsertProduct = `--sql 867699f8-330d-42a5-891e-f1e7eddd9e5f
insert into products(id, slug, title, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, now(), now())
on conflict (slug) do update
set title = excluded.title, updated_at = now()
returning id;
`

const QUpsertProductVariant = `--sql 6d4fbfbf-7a26-4e70-a891-04ac043ecab2
insert into product_variants(id, product_id, shape, storefront_variant_id, position)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::int)
on conflict (product_id, shape) do update
set storefront_variant_id = excluded.storefront_variant_id,
    position = excluded.position
returning id;
`

const QUpsertProductField = `--sql bfcd29b5-0e39-49ef-b047-61063c820112
insert into product_fields(id, product_id, field_key, kind, label, max_words, max_bytes, required, required_shapes)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::text, $5::int, $6::bigint, $7::bool, $8::text[])
on conflict (product_id, field_key) do update
set kind = excluded.kind,
    label = excluded.label,
    max_words = excluded.max_words,
    max_bytes = excluded.max_bytes,
    required = excluded.required,
    required_shapes = excluded.required_shapes
returning id;
`
